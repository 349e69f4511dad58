package model

import (
	"strings"
	"time"
)

// CampaignStatus represents the recruiting status of a campaign as
// reported by the backend.
type CampaignStatus string

const (
	CampaignStatusActive   CampaignStatus = "Active"
	CampaignStatusDeactive CampaignStatus = "Deactive"
)

// String returns the string representation of the campaign status.
func (s CampaignStatus) String() string {
	return string(s)
}

// CampaignSummary is a campaign as listed by the campaign endpoints.
// Records are immutable once fetched; an admin edit replaces the whole
// record. The server is the authority on all counts; the invariant
// ApprovedApplicants <= Recruiting is expected but never enforced here.
type CampaignSummary struct {
	ID                 string         `json:"id"`
	Title              string         `json:"campaignTitle"`
	Brand              string         `json:"brandName"`
	Description        string         `json:"productDescription,omitempty"`
	Platforms          []string       `json:"category,omitempty"`
	Image              string         `json:"image,omitempty"`
	Deadline           time.Time      `json:"deadline"`
	RecruitmentEndDate time.Time      `json:"recruitmentEndDate"`
	Status             CampaignStatus `json:"campaignStatus"`
	Recruiting         int            `json:"recruiting"`
	ApprovedApplicants int            `json:"approvedApplicantsCount"`
}

// IsClosed reports whether the campaign no longer accepts applications:
// either the backend deactivated it, or its recruitment window has
// passed while the status still says Active.
func (c CampaignSummary) IsClosed(now time.Time) bool {
	if c.Status == CampaignStatusDeactive {
		return true
	}
	return !c.RecruitmentEndDate.IsZero() && now.After(c.RecruitmentEndDate)
}

// IsPublic reports whether the campaign is visible to anonymous
// visitors. Public campaigns are flagged with a "#" brand prefix.
func (c CampaignSummary) IsPublic() bool {
	return strings.HasPrefix(c.Brand, "#")
}

// DisplayBrand returns the brand name without the public "#" marker.
func (c CampaignSummary) DisplayBrand() string {
	return strings.TrimPrefix(c.Brand, "#")
}
