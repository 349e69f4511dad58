package matchably

import "context"

// PointBalance is the viewer's referral-point ledger summary.
type PointBalance struct {
	Points  int          `json:"points"`
	History []PointEntry `json:"history,omitempty"`
}

// PointEntry is one row of the point ledger.
type PointEntry struct {
	Reason string `json:"reason"`
	Points int    `json:"points"`
	Date   string `json:"date,omitempty"`
}

// RewardTier is a redeemable reward.
type RewardTier struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// ReferralInfo is the viewer's referral link and progress.
type ReferralInfo struct {
	ReferralLink string          `json:"referralLink"`
	Progress     string          `json:"progress,omitempty"`
	Table        []ReferralEntry `json:"table,omitempty"`
}

// ReferralEntry is one referred signup.
type ReferralEntry struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Points int    `json:"points"`
}

// Points fetches the viewer's point balance and the reward tiers.
func (c *Client) Points(ctx context.Context) (*PointBalance, []RewardTier, error) {
	const op = "rewards.points"

	var resp struct {
		Envelope
		Points  int          `json:"points"`
		History []PointEntry `json:"history"`
		Tiers   []RewardTier `json:"tiers"`
	}
	if err := c.get(ctx, op, "/user/campaigns/points", &resp); err != nil {
		return nil, nil, err
	}
	return &PointBalance{Points: resp.Points, History: resp.History}, resp.Tiers, nil
}

// Redeem exchanges points for a reward tier. Insufficient balance
// comes back as a business error.
func (c *Client) Redeem(ctx context.Context, tierID string) error {
	const op = "rewards.redeem"
	body := map[string]string{"tierId": tierID}
	var resp Envelope
	return c.post(ctx, op, "/user/campaigns/redeem", body, &resp)
}

// Referral fetches the viewer's referral link and referred signups.
func (c *Client) Referral(ctx context.Context) (*ReferralInfo, error) {
	const op = "rewards.referral"

	var resp struct {
		Envelope
		ReferralInfo
	}
	if err := c.get(ctx, op, "/user/campaigns/referral", &resp); err != nil {
		return nil, err
	}
	return &resp.ReferralInfo, nil
}
