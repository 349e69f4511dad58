package matchably

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/me/matchably/pkg/model"
)

// CampaignInput is the body for admin campaign create/edit. Edits
// replace the whole record.
type CampaignInput struct {
	Title              string   `json:"campaignTitle"`
	Brand              string   `json:"brandName"`
	Description        string   `json:"productDescription,omitempty"`
	Platforms          []string `json:"category,omitempty"`
	Image              string   `json:"image,omitempty"`
	Deadline           string   `json:"deadline"`
	RecruitmentEndDate string   `json:"recruitmentEndDate"`
	Status             string   `json:"campaignStatus"`
	Recruiting         int      `json:"recruiting"`
}

// Applicant is one application row in the admin review list.
type Applicant struct {
	ID                     string                  `json:"id"`
	Name                   string                  `json:"name"`
	Email                  string                  `json:"email"`
	Phone                  string                  `json:"phone,omitempty"`
	Address                string                  `json:"address,omitempty"`
	City                   string                  `json:"city,omitempty"`
	State                  string                  `json:"state,omitempty"`
	Zip                    string                  `json:"zip,omitempty"`
	InstagramID            string                  `json:"instagramId,omitempty"`
	TikTokID               string                  `json:"tiktokId,omitempty"`
	Status                 model.ApplicationStatus `json:"status"`
	RejectionReason        string                  `json:"rejectionReason,omitempty"`
	ShowReasonToInfluencer bool                    `json:"showReasonToInfluencer"`
}

// StatusUpdate is the body for the admin application status endpoint.
type StatusUpdate struct {
	Status                 model.ApplicationStatus `json:"status"`
	RejectionReason        string                  `json:"rejectionReason,omitempty"`
	ShowReasonToInfluencer bool                    `json:"showReasonToInfluencer"`
}

// PointAdjustment is the body for the manual point-adjust endpoint.
type PointAdjustment struct {
	Email  string `json:"email"`
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// RewardTransaction is a pending or decided redemption.
type RewardTransaction struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Tier   string `json:"tier"`
	Points int    `json:"points"`
	Status string `json:"status"`
}

// AdminCampaigns fetches one page of campaigns for the admin table.
func (c *Client) AdminCampaigns(ctx context.Context, page int) ([]model.CampaignSummary, error) {
	const op = "admin.campaigns"
	if page < 1 {
		page = 1
	}
	var resp campaignsResponse
	if err := c.adminGet(ctx, op, fmt.Sprintf("/admin/campaigns?page=%d", page), &resp); err != nil {
		return nil, err
	}
	return resp.Campaigns, nil
}

// AdminBrands fetches the known brand names.
func (c *Client) AdminBrands(ctx context.Context) ([]string, error) {
	const op = "admin.brands"
	var resp struct {
		Envelope
		Brands []string `json:"brands"`
	}
	if err := c.adminGet(ctx, op, "/admin/campaigns/brands", &resp); err != nil {
		return nil, err
	}
	return resp.Brands, nil
}

// AdminCreateCampaign creates a campaign and returns its id.
func (c *Client) AdminCreateCampaign(ctx context.Context, in CampaignInput) (string, error) {
	const op = "admin.create_campaign"
	var resp struct {
		Envelope
		ID string `json:"id"`
	}
	if err := c.adminPost(ctx, op, "/admin/campaigns", in, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// AdminEditCampaign replaces a campaign record.
func (c *Client) AdminEditCampaign(ctx context.Context, id string, in CampaignInput) error {
	const op = "admin.edit_campaign"
	var resp Envelope
	return c.adminPut(ctx, op, "/admin/campaigns/editCampaign/"+id, in, &resp)
}

// AdminDeleteCampaign deletes a campaign.
func (c *Client) AdminDeleteCampaign(ctx context.Context, id string) error {
	const op = "admin.delete_campaign"
	var resp Envelope
	return c.adminDel(ctx, op, "/admin/campaigns/"+id, &resp)
}

// AdminApplicants fetches one page of applicants for a campaign.
func (c *Client) AdminApplicants(ctx context.Context, campaignID string, page int) ([]Applicant, int, error) {
	const op = "admin.applicants"
	if page < 1 {
		page = 1
	}
	var resp struct {
		Envelope
		Applicants    []Applicant `json:"applicants"`
		ApprovedCount int         `json:"approvedCount"`
	}
	path := fmt.Sprintf("/admin/applications/paginate/%s?page=%d", campaignID, page)
	if err := c.adminGet(ctx, op, path, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Applicants, resp.ApprovedCount, nil
}

// AdminSetApplicationStatus sets an applicant's outcome. The current
// status is not checked here; the server arbitrates conflicting
// concurrent edits (last write wins).
func (c *Client) AdminSetApplicationStatus(ctx context.Context, applicantID string, update StatusUpdate) error {
	const op = "admin.set_application_status"
	var resp Envelope
	return c.adminPut(ctx, op, "/admin/applications/"+applicantID+"/status", update, &resp)
}

// AdminExportApplicants downloads the CSV export for a campaign.
func (c *Client) AdminExportApplicants(ctx context.Context, campaignID string) ([]byte, error) {
	const op = "admin.export_applicants"
	return c.rawGet(ctx, op, "/admin/applications/download/"+campaignID)
}

// AdminUsers fetches one page of user accounts.
func (c *Client) AdminUsers(ctx context.Context, page int) ([]model.User, error) {
	const op = "admin.users"
	if page < 1 {
		page = 1
	}
	var resp struct {
		Envelope
		Users []model.User `json:"users"`
	}
	if err := c.adminGet(ctx, op, fmt.Sprintf("/admin/users/paginate?page=%d", page), &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// AdminBlockUser toggles a user's blocked flag.
func (c *Client) AdminBlockUser(ctx context.Context, userID string, blocked bool) error {
	const op = "admin.block_user"
	body := map[string]bool{"blocked": blocked}
	var resp Envelope
	return c.adminPut(ctx, op, "/admin/users/"+userID+"/block", body, &resp)
}

// AdminVerifyUser marks a user's email as verified.
func (c *Client) AdminVerifyUser(ctx context.Context, userID string) error {
	const op = "admin.verify_user"
	var resp Envelope
	return c.adminPut(ctx, op, "/admin/users/"+userID+"/verify", nil, &resp)
}

// AdminDeleteUser removes a user account.
func (c *Client) AdminDeleteUser(ctx context.Context, userID string) error {
	const op = "admin.delete_user"
	var resp Envelope
	return c.adminDel(ctx, op, "/admin/users/"+userID, &resp)
}

// AdminAdjustPoints applies a manual ledger adjustment.
func (c *Client) AdminAdjustPoints(ctx context.Context, adj PointAdjustment) error {
	const op = "admin.adjust_points"
	var resp Envelope
	return c.adminPost(ctx, op, "/user/admin/adjust-points", adj, &resp)
}

// AdminRewardTransactions lists redemption requests.
func (c *Client) AdminRewardTransactions(ctx context.Context) ([]RewardTransaction, error) {
	const op = "admin.reward_transactions"
	var resp struct {
		Envelope
		Transactions []RewardTransaction `json:"transactions"`
	}
	if err := c.adminGet(ctx, op, "/user/admin/reward-transactions", &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

// AdminDecideRewardTransaction approves or denies a redemption.
func (c *Client) AdminDecideRewardTransaction(ctx context.Context, id, decision string) error {
	const op = "admin.decide_reward_transaction"
	body := map[string]string{"decision": decision}
	var resp Envelope
	return c.adminPut(ctx, op, "/admin/reward-transactions/"+id, body, &resp)
}

// PointRules are the configurable point awards for referral events.
type PointRules struct {
	SignupPoints   int `json:"signupPoints"`
	ReferralPoints int `json:"referralPoints"`
	ApprovalPoints int `json:"approvalPoints"`
}

// ReferralLog is one referral event in the admin audit view.
type ReferralLog struct {
	ReferrerEmail string `json:"referrerEmail"`
	ReferredEmail string `json:"referredEmail"`
	Points        int    `json:"points"`
	Date          string `json:"date,omitempty"`
}

// AdminPointRules fetches the current point award configuration.
func (c *Client) AdminPointRules(ctx context.Context) (*PointRules, error) {
	const op = "admin.point_rules"
	var resp struct {
		Envelope
		Rules PointRules `json:"rules"`
	}
	if err := c.adminGet(ctx, op, "/user/admin/point-rules", &resp); err != nil {
		return nil, err
	}
	return &resp.Rules, nil
}

// AdminSetPointRules replaces the point award configuration.
func (c *Client) AdminSetPointRules(ctx context.Context, rules PointRules) error {
	const op = "admin.set_point_rules"
	var resp Envelope
	return c.adminPut(ctx, op, "/user/admin/point-rules", rules, &resp)
}

// AdminReferralLogs lists referral events for auditing.
func (c *Client) AdminReferralLogs(ctx context.Context) ([]ReferralLog, error) {
	const op = "admin.referral_logs"
	var resp struct {
		Envelope
		Logs []ReferralLog `json:"logs"`
	}
	if err := c.adminGet(ctx, op, "/user/admin/referral-logs", &resp); err != nil {
		return nil, err
	}
	return resp.Logs, nil
}

// AdminSubmission fetches an applicant's post-URL submission for
// content review.
func (c *Client) AdminSubmission(ctx context.Context, campaignID, email string) (*model.PostSubmission, error) {
	const op = "admin.submission"
	var resp struct {
		Envelope
		Submission *model.PostSubmission `json:"submission"`
	}
	path := fmt.Sprintf("/user/admin/submission/%s/%s", campaignID, url.PathEscape(email))
	err := c.adminGet(ctx, op, path, &resp)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return resp.Submission, nil
}

// AdminSetSubmissionStatus decides an applicant's submitted content.
func (c *Client) AdminSetSubmissionStatus(ctx context.Context, campaignID, email string, status model.ApplicationStatus) error {
	const op = "admin.set_submission_status"
	body := map[string]string{
		"campaignId": campaignID,
		"email":      email,
		"status":     string(status),
	}
	var resp Envelope
	return c.adminPost(ctx, op, "/user/admin/submission/update-status", body, &resp)
}

// rawGet fetches a non-envelope payload (file downloads) with the
// admin token.
func (c *Client) rawGet(ctx context.Context, op, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return nil, WrapError(op, err)
	}
	if c.config.AdminToken != "" {
		req.Header.Set("Authorization", c.config.AdminToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, WrapError(op, fmt.Errorf("HTTP request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError(op, fmt.Errorf("reading response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, WrapError(op, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)})
	}
	return body, nil
}
