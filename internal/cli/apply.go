package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/matchably/pkg/model"
)

func newApplyCmd() *cobra.Command {
	var req model.ApplyRequest

	cmd := &cobra.Command{
		Use:   "apply <campaign_id>",
		Short: "Apply to a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.CampaignID = args[0]

			user, err := sessions.Verify(cmd.Context())
			if err != nil {
				return fmt.Errorf("verify session: %w", err)
			}
			if user == nil {
				return fmt.Errorf("not signed in, run 'matchably login' first")
			}
			if req.Name == "" {
				req.Name = user.Name
			}
			req.Email = user.Email
			if req.InstagramID == "" {
				req.InstagramID = user.InstagramID
			}
			if req.TikTokID == "" {
				req.TikTokID = user.TikTokID
			}

			if apiErr := req.Validate(); apiErr != nil {
				return apiErr
			}

			if err := gateway.Apply(cmd.Context(), req); err != nil {
				return fmt.Errorf("apply: %w", err)
			}

			fmt.Printf("Applied to campaign %s.\n", req.CampaignID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Applicant name (defaults to account name)")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&req.Address, "address", "", "Shipping address")
	cmd.Flags().StringVar(&req.City, "city", "", "City")
	cmd.Flags().StringVar(&req.State, "state", "", "State")
	cmd.Flags().StringVar(&req.Zip, "zip", "", "ZIP code")
	cmd.Flags().StringVar(&req.InstagramID, "instagram", "", "Instagram handle (defaults to profile)")
	cmd.Flags().StringVar(&req.TikTokID, "tiktok", "", "TikTok handle (defaults to profile)")
	return cmd
}

func newApplicationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "applications",
		Short: "List your applications and their outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := gateway.AppliedCampaigns(cmd.Context())
			if err != nil {
				return fmt.Errorf("list applications: %w", err)
			}

			if len(result.Campaigns) == 0 {
				fmt.Println("No applications found.")
				return nil
			}

			fmt.Printf("%-26s  %-28s  %-16s  %-10s  %s\n", "ID", "TITLE", "BRAND", "STATUS", "REASON")
			fmt.Printf("%-26s  %-28s  %-16s  %-10s  %s\n", "--", "-----", "-----", "------", "------")
			for i := range result.Campaigns {
				ac := &result.Campaigns[i]
				reason := ac.Application().VisibleRejectionReason()
				if reason == "" {
					reason = "-"
				}
				fmt.Printf("%-26s  %-28s  %-16s  %-10s  %s\n",
					ac.ID,
					clip(ac.Title, 28),
					clip(ac.DisplayBrand(), 16),
					ac.ApplicationStatus,
					reason)
			}

			fmt.Printf("\n%d of %d applications used this month\n", result.AppliedThisMonth, model.MonthlyApplyLimit)
			return nil
		},
	}
}
