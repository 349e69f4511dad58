package model

import (
	"testing"
	"time"
)

var (
	testNow  = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	farAway  = time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	lastWeek = time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
)

func openCampaign() CampaignSummary {
	return CampaignSummary{
		ID:                 "c1",
		Title:              "Summer Launch",
		Brand:              "GlowCo",
		Status:             CampaignStatusActive,
		RecruitmentEndDate: farAway,
	}
}

func TestDeriveState_Anonymous(t *testing.T) {
	// An unauthenticated viewer gets SignInRequired regardless of any
	// other input.
	c := openCampaign()
	app := &Application{CampaignID: "c1", Status: ApplicationStatusApproved}

	tests := []struct {
		name             string
		campaign         CampaignSummary
		app              *Application
		applied          bool
		appliedThisMonth int
	}{
		{"open campaign", openCampaign(), nil, false, 0},
		{"approved application", c, app, true, 0},
		{"at monthly limit", c, nil, false, MonthlyApplyLimit},
		{"closed campaign", CampaignSummary{Status: CampaignStatusDeactive}, nil, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveState(false, tt.campaign, tt.app, tt.applied, tt.appliedThisMonth, testNow)
			if got != StateSignInRequired {
				t.Errorf("DeriveState() = %v, want %v", got, StateSignInRequired)
			}
		})
	}
}

func TestDeriveState_ApplicationStatusWins(t *testing.T) {
	// An existing application's status overrides closure and the
	// monthly cap.
	closed := CampaignSummary{
		ID:                 "c1",
		Status:             CampaignStatusDeactive,
		RecruitmentEndDate: lastWeek,
	}

	tests := []struct {
		status ApplicationStatus
		want   EffectiveCampaignState
	}{
		{ApplicationStatusApproved, StateApproved},
		{ApplicationStatusRejected, StateRejected},
		{ApplicationStatusPending, StatePending},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			app := &Application{CampaignID: "c1", Status: tt.status}
			got := DeriveState(true, closed, app, true, MonthlyApplyLimit, testNow)
			if got != tt.want {
				t.Errorf("DeriveState() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeriveState_AppliedWithoutRecord(t *testing.T) {
	// An id known from the applied set whose record has not loaded
	// shows as Pending.
	got := DeriveState(true, openCampaign(), nil, true, 0, testNow)
	if got != StatePending {
		t.Errorf("DeriveState() = %v, want %v", got, StatePending)
	}
}

func TestDeriveState_Closed(t *testing.T) {
	tests := []struct {
		name     string
		campaign CampaignSummary
		want     EffectiveCampaignState
	}{
		{
			"deactive status",
			CampaignSummary{Status: CampaignStatusDeactive, RecruitmentEndDate: farAway},
			StateClosed,
		},
		{
			// Still Active but the recruitment window has passed.
			"recruitment window passed",
			CampaignSummary{Status: CampaignStatusActive, RecruitmentEndDate: lastWeek},
			StateClosed,
		},
		{
			"open",
			CampaignSummary{Status: CampaignStatusActive, RecruitmentEndDate: farAway},
			StateNotApplied,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveState(true, tt.campaign, nil, false, 0, testNow)
			if got != tt.want {
				t.Errorf("DeriveState() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeriveState_MonthlyLimit(t *testing.T) {
	tests := []struct {
		appliedThisMonth int
		want             EffectiveCampaignState
	}{
		{MonthlyApplyLimit - 1, StateNotApplied},
		{MonthlyApplyLimit, StateLimitReached},
		{MonthlyApplyLimit + 1, StateLimitReached},
	}
	for _, tt := range tests {
		got := DeriveState(true, openCampaign(), nil, false, tt.appliedThisMonth, testNow)
		if got != tt.want {
			t.Errorf("DeriveState(appliedThisMonth=%d) = %v, want %v", tt.appliedThisMonth, got, tt.want)
		}
	}
}

func TestDeriveState_ClosedBeatsLimit(t *testing.T) {
	// Closure outranks the monthly cap for campaigns the viewer never
	// applied to.
	closed := CampaignSummary{Status: CampaignStatusActive, RecruitmentEndDate: lastWeek}
	got := DeriveState(true, closed, nil, false, MonthlyApplyLimit, testNow)
	if got != StateClosed {
		t.Errorf("DeriveState() = %v, want %v", got, StateClosed)
	}
}

func TestButtonFor(t *testing.T) {
	tests := []struct {
		state   EffectiveCampaignState
		label   string
		enabled bool
	}{
		{StateSignInRequired, "Sign In to Apply", true},
		{StateNotApplied, "Apply Now", true},
		{StatePending, "Applied", false},
		{StateApproved, "Approved", false},
		{StateRejected, "Rejected", false},
		{StateClosed, "Closed", false},
		{StateLimitReached, "Limit Reached", false},
	}
	for _, tt := range tests {
		b := ButtonFor(tt.state)
		if b.Label != tt.label || b.Enabled != tt.enabled {
			t.Errorf("ButtonFor(%v) = {%q, %v}, want {%q, %v}", tt.state, b.Label, b.Enabled, tt.label, tt.enabled)
		}
	}
}

func TestVisibleTo(t *testing.T) {
	public := CampaignSummary{Brand: "#GlowCo", Status: CampaignStatusActive, RecruitmentEndDate: farAway}
	private := CampaignSummary{Brand: "GlowCo", Status: CampaignStatusActive, RecruitmentEndDate: farAway}
	closed := CampaignSummary{Brand: "GlowCo", Status: CampaignStatusDeactive}

	tests := []struct {
		name          string
		authenticated bool
		campaign      CampaignSummary
		applied       bool
		want          bool
	}{
		{"anonymous sees public", false, public, false, true},
		{"anonymous hides private", false, private, false, false},
		{"anonymous hides closed private", false, closed, false, false},
		{"authed sees open", true, private, false, true},
		{"authed hides closed unapplied", true, closed, false, false},
		{"authed sees closed applied", true, closed, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleTo(tt.authenticated, tt.campaign, tt.applied, testNow)
			if got != tt.want {
				t.Errorf("VisibleTo() = %v, want %v", got, tt.want)
			}
		})
	}
}
