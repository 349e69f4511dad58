package model

import "time"

// MonthlyApplyLimit is the per-user cap on applications per calendar
// month. Mirrors the server's limit; the client check is advisory only
// and the server remains the authority.
const MonthlyApplyLimit = 5

// EffectiveCampaignState is the display state of a campaign for one
// viewer. It is derived per render and never persisted.
type EffectiveCampaignState string

const (
	StateSignInRequired EffectiveCampaignState = "SignInRequired"
	StateNotApplied     EffectiveCampaignState = "NotApplied"
	StatePending        EffectiveCampaignState = "Pending"
	StateApproved       EffectiveCampaignState = "Approved"
	StateRejected       EffectiveCampaignState = "Rejected"
	StateClosed         EffectiveCampaignState = "Closed"
	StateLimitReached   EffectiveCampaignState = "LimitReached"
)

// String returns the string representation of the state.
func (s EffectiveCampaignState) String() string {
	return string(s)
}

// DeriveState computes the display state of a campaign for a viewer.
// Rules apply in priority order, first match wins:
//
//  1. unauthenticated viewer            -> SignInRequired
//  2. application Approved              -> Approved
//  3. application Rejected              -> Rejected
//  4. application Pending (or an
//     applied id with no record yet)    -> Pending
//  5. campaign closed                   -> Closed
//  6. monthly limit reached             -> LimitReached
//  7. otherwise                         -> NotApplied
//
// An existing application always wins over closure and the monthly
// cap, so a user who applied before a campaign closed still sees the
// outcome rather than a generic Closed label. applied covers ids known
// from the applied-campaigns endpoint whose full record has not been
// fetched; applications start life as Pending, so that is what the
// viewer sees until the record arrives.
func DeriveState(authenticated bool, c CampaignSummary, app *Application, applied bool, appliedThisMonth int, now time.Time) EffectiveCampaignState {
	if !authenticated {
		return StateSignInRequired
	}
	if app != nil {
		switch app.Status {
		case ApplicationStatusApproved:
			return StateApproved
		case ApplicationStatusRejected:
			return StateRejected
		case ApplicationStatusPending:
			return StatePending
		}
	}
	if applied {
		return StatePending
	}
	if c.IsClosed(now) {
		return StateClosed
	}
	if appliedThisMonth >= MonthlyApplyLimit {
		return StateLimitReached
	}
	return StateNotApplied
}

// Button is the fixed label/enabled pair rendered for a campaign state.
type Button struct {
	Label   string
	Enabled bool
}

// buttons maps each state to its fixed apply-button rendering.
var buttons = map[EffectiveCampaignState]Button{
	StateSignInRequired: {Label: "Sign In to Apply", Enabled: true},
	StateNotApplied:     {Label: "Apply Now", Enabled: true},
	StatePending:        {Label: "Applied", Enabled: false},
	StateApproved:       {Label: "Approved", Enabled: false},
	StateRejected:       {Label: "Rejected", Enabled: false},
	StateClosed:         {Label: "Closed", Enabled: false},
	StateLimitReached:   {Label: "Limit Reached", Enabled: false},
}

// ButtonFor returns the apply-button rendering for a state.
func ButtonFor(s EffectiveCampaignState) Button {
	if b, ok := buttons[s]; ok {
		return b
	}
	return Button{Label: "Apply Now", Enabled: false}
}

// VisibleTo reports whether a campaign appears in the list for a
// viewer. Anonymous visitors only see public "#" campaigns; signed-in
// users additionally hide closed campaigns they never applied to.
func VisibleTo(authenticated bool, c CampaignSummary, applied bool, now time.Time) bool {
	if !authenticated {
		return c.IsPublic()
	}
	if c.IsClosed(now) && !applied {
		return false
	}
	return true
}
