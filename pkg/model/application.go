package model

import "time"

// ApplicationStatus represents the admin-assigned outcome of an
// application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "Pending"
	ApplicationStatusApproved ApplicationStatus = "Approved"
	ApplicationStatusRejected ApplicationStatus = "Rejected"
)

// String returns the string representation of the application status.
func (s ApplicationStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the application has a final outcome.
func (s ApplicationStatus) IsTerminal() bool {
	switch s {
	case ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// ValidApplicationTransitions defines the admin-driven status changes.
// Only the server mutates applications; this mirrors its rules so the
// admin surface can reject impossible edits before submitting them.
var ValidApplicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending:  {ApplicationStatusApproved, ApplicationStatusRejected},
	ApplicationStatusApproved: {ApplicationStatusRejected},
	ApplicationStatusRejected: {ApplicationStatusApproved},
}

// CanTransitionTo returns true if moving from the current status to
// next is valid.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range ValidApplicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Application is a user's request to participate in a campaign.
// Created once by the user; the status and rejection fields are
// mutated only by admin action on the server.
type Application struct {
	CampaignID             string            `json:"campaignId"`
	UserEmail              string            `json:"email,omitempty"`
	Status                 ApplicationStatus `json:"status"`
	AppliedAt              time.Time         `json:"appliedAt"`
	RejectionReason        string            `json:"rejectionReason,omitempty"`
	ShowReasonToInfluencer bool              `json:"showReasonToInfluencer"`
}

// VisibleRejectionReason returns the rejection reason the applicant is
// allowed to see. The reason stays hidden unless the application is
// rejected and the admin flagged it for disclosure.
func (a *Application) VisibleRejectionReason() string {
	if a.Status != ApplicationStatusRejected || !a.ShowReasonToInfluencer {
		return ""
	}
	return a.RejectionReason
}

// ApplyRequest is the body for the campaign apply endpoint.
type ApplyRequest struct {
	CampaignID  string `json:"campaignId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	InstagramID string `json:"instagramId,omitempty"`
	TikTokID    string `json:"tiktokId,omitempty"`
}

// Validate checks the required shipping fields before submission.
func (r *ApplyRequest) Validate() *APIError {
	var details []FieldError
	if r.CampaignID == "" {
		details = append(details, FieldError{Field: "campaignId", Message: "campaign id is required"})
	}
	if r.Address == "" {
		details = append(details, FieldError{Field: "address", Message: "street address is required"})
	}
	if r.City == "" {
		details = append(details, FieldError{Field: "city", Message: "city is required"})
	}
	if r.State == "" {
		details = append(details, FieldError{Field: "state", Message: "state is required"})
	}
	if r.Zip == "" {
		details = append(details, FieldError{Field: "zip", Message: "zip code is required"})
	}
	if len(details) > 0 {
		return NewValidationError("missing required fields", details...)
	}
	return nil
}

// PostSubmission is a social-post URL record attached to an approved
// application. The user creates, replaces, or deletes the whole record.
type PostSubmission struct {
	CampaignID    string            `json:"campaignId"`
	InstagramURLs []string          `json:"instagramUrls,omitempty"`
	TikTokURLs    []string          `json:"tiktokUrls,omitempty"`
	Status        ApplicationStatus `json:"status,omitempty"`
	SubmittedAt   time.Time         `json:"submittedAt,omitempty"`
}
