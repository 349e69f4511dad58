package matchably

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/me/matchably/pkg/model"
)

// noCampaignsMessage is the sentinel the backend sends when a page is
// past the end of the list.
const noCampaignsMessage = "No campaigns found"

// campaignsResponse is the body of the campaign list endpoints.
type campaignsResponse struct {
	Envelope
	Campaigns []model.CampaignSummary `json:"campaigns"`
}

// AppliedCampaign is a campaign joined with the viewer's application,
// as returned by the applied-campaigns endpoint.
type AppliedCampaign struct {
	model.CampaignSummary
	ApplicationStatus      model.ApplicationStatus `json:"applicationStatus"`
	RejectionReason        string                  `json:"rejectionReason,omitempty"`
	ShowReasonToInfluencer bool                    `json:"showReasonToInfluencer"`
	AppliedAt              time.Time               `json:"appliedAt,omitempty"`
}

// Application extracts the application record from the joined row.
func (a *AppliedCampaign) Application() *model.Application {
	return &model.Application{
		CampaignID:             a.ID,
		Status:                 a.ApplicationStatus,
		AppliedAt:              a.AppliedAt,
		RejectionReason:        a.RejectionReason,
		ShowReasonToInfluencer: a.ShowReasonToInfluencer,
	}
}

// AppliedResult is the body of GET /user/campaigns/appliedCampaigns.
type AppliedResult struct {
	Campaigns        []AppliedCampaign
	AppliedThisMonth int
}

type appliedResponse struct {
	Envelope
	Campaigns        []AppliedCampaign `json:"campaigns"`
	AppliedThisMonth int               `json:"appliedThisMonth"`
}

// ActiveCampaigns fetches the campaigns featured on the home page.
// Anonymous access is allowed; the backend scopes the list itself.
func (c *Client) ActiveCampaigns(ctx context.Context) ([]model.CampaignSummary, error) {
	const op = "campaigns.active"
	var resp campaignsResponse
	if err := c.get(ctx, op, "/user/campaigns/active", &resp); err != nil {
		return nil, err
	}
	return resp.Campaigns, nil
}

// CampaignsPage fetches one page of the campaign list. Past the last
// page the backend answers with a "no campaigns" rejection; that maps
// to an empty slice so callers can treat it as exhaustion.
func (c *Client) CampaignsPage(ctx context.Context, page int) ([]model.CampaignSummary, error) {
	const op = "campaigns.page"
	if page < 1 {
		page = 1
	}

	var resp campaignsResponse
	err := c.get(ctx, op, fmt.Sprintf("/user/campaigns/?page=%d", page), &resp)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && (apiErr.Message == noCampaignsMessage || apiErr.Code == model.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return resp.Campaigns, nil
}

// AppliedCampaigns fetches the viewer's applied campaigns with their
// application outcomes, plus the count of applications this month.
// When the backend omits the count it falls back to the applied total.
func (c *Client) AppliedCampaigns(ctx context.Context) (*AppliedResult, error) {
	const op = "campaigns.applied"
	var resp appliedResponse
	if err := c.get(ctx, op, "/user/campaigns/appliedCampaigns", &resp); err != nil {
		return nil, err
	}

	result := &AppliedResult{
		Campaigns:        resp.Campaigns,
		AppliedThisMonth: resp.AppliedThisMonth,
	}
	if result.AppliedThisMonth == 0 {
		result.AppliedThisMonth = len(resp.Campaigns)
	}
	return result, nil
}

// CampaignApplication fetches the viewer's application status for one
// campaign. Returns nil without error when no application exists.
func (c *Client) CampaignApplication(ctx context.Context, campaignID, email string) (*model.Application, error) {
	const op = "campaigns.application"

	var resp struct {
		Envelope
		Application *model.Application `json:"application"`
	}
	err := c.get(ctx, op, fmt.Sprintf("/user/campaigns/%s/%s", campaignID, email), &resp)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return resp.Application, nil
}

// Apply submits an application. The request is validated locally
// first; the server remains the authority on seats and the monthly
// cap, rejecting over-limit requests with a business code.
func (c *Client) Apply(ctx context.Context, req model.ApplyRequest) error {
	const op = "campaigns.apply"
	if apiErr := req.Validate(); apiErr != nil {
		return &Error{Op: op, Code: apiErr.Code, Message: apiErr.Message}
	}

	var resp Envelope
	return c.post(ctx, op, "/user/campaigns/apply", req, &resp)
}

// GetSubmission fetches the viewer's post-URL submission for a
// campaign. Returns nil without error when none exists.
func (c *Client) GetSubmission(ctx context.Context, campaignID string) (*model.PostSubmission, error) {
	const op = "submissions.get"

	var resp struct {
		Envelope
		Submission *model.PostSubmission `json:"submission"`
	}
	err := c.get(ctx, op, "/user/campaign-submission/"+campaignID, &resp)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return resp.Submission, nil
}

// CreateSubmission records the viewer's post URLs for a campaign.
func (c *Client) CreateSubmission(ctx context.Context, sub model.PostSubmission) error {
	const op = "submissions.create"
	var resp Envelope
	return c.post(ctx, op, "/user/campaign-submission", sub, &resp)
}

// UpdateSubmission replaces the post-URL record for a campaign.
func (c *Client) UpdateSubmission(ctx context.Context, campaignID string, sub model.PostSubmission) error {
	const op = "submissions.update"
	var resp Envelope
	return c.put(ctx, op, "/user/campaign-submission/"+campaignID, sub, &resp)
}

// DeleteSubmission removes the post-URL record for a campaign.
func (c *Client) DeleteSubmission(ctx context.Context, campaignID string) error {
	const op = "submissions.delete"
	var resp Envelope
	return c.del(ctx, op, "/user/campaign-submission/"+campaignID, &resp)
}
