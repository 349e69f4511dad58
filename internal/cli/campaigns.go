package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/matchably/internal/cache"
	"github.com/me/matchably/pkg/model"
)

// viewerCache loads the full campaign list and, for signed-in users,
// their application outcomes.
func viewerCache(ctx context.Context) (*cache.Cache, bool, error) {
	user, err := sessions.Verify(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("verify session: %w", err)
	}
	authenticated := user != nil

	c := cache.New(gateway, logger)
	if err := c.LoadAll(ctx); err != nil {
		return nil, false, fmt.Errorf("load campaigns: %w", err)
	}
	if authenticated {
		if err := c.RefreshApplied(ctx); err != nil {
			logger.Warn("applied refresh failed", "error", err)
		}
	}
	return c, authenticated, nil
}

func newCampaignsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaigns",
		Short: "Browse campaigns",
	}
	cmd.AddCommand(newCampaignsListCmd(), newCampaignsShowCmd())
	return cmd
}

func newCampaignsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List campaigns visible to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, authenticated, err := viewerCache(cmd.Context())
			if err != nil {
				return err
			}

			now := timeNow()
			visible := c.VisibleCampaigns(authenticated, now)
			if len(visible) == 0 {
				fmt.Println("No campaigns found.")
				return nil
			}

			fmt.Printf("%-26s  %-28s  %-16s  %-14s  %-7s  %s\n", "ID", "TITLE", "BRAND", "STATE", "SEATS", "CLOSES")
			fmt.Printf("%-26s  %-28s  %-16s  %-14s  %-7s  %s\n", "--", "-----", "-----", "-----", "-----", "------")
			for _, campaign := range visible {
				state := c.StateFor(campaign.ID, authenticated, now)
				closes := "-"
				if !campaign.RecruitmentEndDate.IsZero() {
					closes = humanize.Time(campaign.RecruitmentEndDate)
				}
				fmt.Printf("%-26s  %-28s  %-16s  %-14s  %d/%-5d  %s\n",
					campaign.ID,
					clip(campaign.Title, 28),
					clip(campaign.DisplayBrand(), 16),
					state,
					campaign.ApprovedApplicants, campaign.Recruiting,
					closes)
			}

			if authenticated {
				fmt.Printf("\n%d of %d applications used this month\n", c.AppliedThisMonth(), model.MonthlyApplyLimit)
			}
			return nil
		},
	}
}

func newCampaignsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <campaign_id>",
		Short: "Show one campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			c, authenticated, err := viewerCache(cmd.Context())
			if err != nil {
				return err
			}

			now := timeNow()
			campaign, ok := c.Get(id)
			if !ok || !model.VisibleTo(authenticated, campaign, c.Applied(id), now) {
				return fmt.Errorf("campaign %s not found", id)
			}

			state := c.StateFor(id, authenticated, now)
			button := model.ButtonFor(state)

			fmt.Printf("Campaign: %s\n", campaign.Title)
			fmt.Printf("  Brand:       %s\n", campaign.DisplayBrand())
			fmt.Printf("  State:       %s (%s)\n", state, button.Label)
			if len(campaign.Platforms) > 0 {
				fmt.Printf("  Platforms:   %s\n", strings.Join(campaign.Platforms, ", "))
			}
			if campaign.Description != "" {
				fmt.Printf("  Description: %s\n", campaign.Description)
			}
			fmt.Printf("  Seats:       %d/%d\n", campaign.ApprovedApplicants, campaign.Recruiting)
			if !campaign.RecruitmentEndDate.IsZero() {
				fmt.Printf("  Closes:      %s (%s)\n", campaign.RecruitmentEndDate.Format("2006-01-02"), humanize.Time(campaign.RecruitmentEndDate))
			}
			if !campaign.Deadline.IsZero() {
				fmt.Printf("  Deadline:    %s\n", campaign.Deadline.Format("2006-01-02"))
			}

			if app := c.Application(id); app != nil {
				if reason := app.VisibleRejectionReason(); reason != "" {
					fmt.Printf("  Rejection reason: %s\n", reason)
				}
			}
			return nil
		},
	}
}

// clip shortens a string for fixed-width table columns.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
