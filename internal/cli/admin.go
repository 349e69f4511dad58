package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/matchably/pkg/matchably"
	"github.com/me/matchably/pkg/model"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin operations (requires admin token)",
	}
	cmd.AddCommand(
		newAdminCampaignsCmd(),
		newAdminApplicantsCmd(),
		newAdminUsersCmd(),
		newAdminPointsCmd(),
		newAdminRewardsCmd(),
	)
	return cmd
}

// --- Campaigns ---

func newAdminCampaignsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaigns",
		Short: "Manage campaigns",
	}
	cmd.AddCommand(
		newAdminCampaignsListCmd(),
		newAdminCampaignsCreateCmd(),
		newAdminCampaignsEditCmd(),
		newAdminCampaignsDeleteCmd(),
	)
	return cmd
}

func newAdminCampaignsListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			campaigns, err := gateway.AdminCampaigns(cmd.Context(), page)
			if err != nil {
				return fmt.Errorf("list campaigns: %w", err)
			}

			if len(campaigns) == 0 {
				fmt.Println("No campaigns found.")
				return nil
			}

			fmt.Printf("%-26s  %-28s  %-16s  %-9s  %s\n", "ID", "TITLE", "BRAND", "STATUS", "SEATS")
			fmt.Printf("%-26s  %-28s  %-16s  %-9s  %s\n", "--", "-----", "-----", "------", "-----")
			for _, c := range campaigns {
				fmt.Printf("%-26s  %-28s  %-16s  %-9s  %d/%d\n",
					c.ID, clip(c.Title, 28), clip(c.DisplayBrand(), 16), c.Status,
					c.ApprovedApplicants, c.Recruiting)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func campaignInputFlags(cmd *cobra.Command, in *matchably.CampaignInput) {
	cmd.Flags().StringVar(&in.Title, "title", "", "Campaign title")
	cmd.Flags().StringVar(&in.Brand, "brand", "", "Brand name (prefix with # for public)")
	cmd.Flags().StringVar(&in.Description, "description", "", "Product description")
	cmd.Flags().StringSliceVar(&in.Platforms, "platform", nil, "Platform (repeatable: Instagram, TikTok)")
	cmd.Flags().StringVar(&in.Image, "image", "", "Image URL")
	cmd.Flags().StringVar(&in.Deadline, "deadline", "", "Content deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.RecruitmentEndDate, "recruitment-end", "", "Recruitment end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.Status, "status", string(model.CampaignStatusActive), "Campaign status (Active, Deactive)")
	cmd.Flags().IntVar(&in.Recruiting, "recruiting", 0, "Number of seats")
}

func newAdminCampaignsCreateCmd() *cobra.Command {
	var in matchably.CampaignInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a campaign",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Title == "" || in.Brand == "" {
				return fmt.Errorf("--title and --brand required")
			}

			id, err := gateway.AdminCreateCampaign(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("create campaign: %w", err)
			}
			fmt.Printf("Campaign created: %s\n", id)
			return nil
		},
	}

	campaignInputFlags(cmd, &in)
	return cmd
}

func newAdminCampaignsEditCmd() *cobra.Command {
	var in matchably.CampaignInput

	cmd := &cobra.Command{
		Use:   "edit <campaign_id>",
		Short: "Replace a campaign record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if in.Title == "" || in.Brand == "" {
				return fmt.Errorf("--title and --brand required (edit replaces the whole record)")
			}

			if err := gateway.AdminEditCampaign(cmd.Context(), id, in); err != nil {
				return fmt.Errorf("edit campaign: %w", err)
			}
			fmt.Printf("Campaign %s updated.\n", id)
			return nil
		},
	}

	campaignInputFlags(cmd, &in)
	return cmd
}

func newAdminCampaignsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <campaign_id>",
		Short: "Delete a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if err := gateway.AdminDeleteCampaign(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete campaign: %w", err)
			}
			fmt.Printf("Campaign %s deleted.\n", id)
			return nil
		},
	}
}

// --- Applicants ---

func newAdminApplicantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "applicants",
		Short: "Review applicants",
	}
	cmd.AddCommand(
		newAdminApplicantsListCmd(),
		newAdminApplicantsStatusCmd(),
		newAdminApplicantsExportCmd(),
	)
	return cmd
}

func newAdminApplicantsListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list <campaign_id>",
		Short: "List applicants for a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			applicants, approvedCount, err := gateway.AdminApplicants(cmd.Context(), id, page)
			if err != nil {
				return fmt.Errorf("list applicants: %w", err)
			}

			if len(applicants) == 0 {
				fmt.Println("No applicants found.")
				return nil
			}

			fmt.Printf("%-26s  %-20s  %-26s  %-10s  %s\n", "ID", "NAME", "EMAIL", "STATUS", "SOCIAL")
			fmt.Printf("%-26s  %-20s  %-26s  %-10s  %s\n", "--", "----", "-----", "------", "------")
			for _, a := range applicants {
				var social []string
				if a.InstagramID != "" {
					social = append(social, "ig:"+a.InstagramID)
				}
				if a.TikTokID != "" {
					social = append(social, "tt:"+a.TikTokID)
				}
				fmt.Printf("%-26s  %-20s  %-26s  %-10s  %s\n",
					a.ID, clip(a.Name, 20), clip(a.Email, 26), a.Status, strings.Join(social, " "))
			}

			fmt.Printf("\n%d approved\n", approvedCount)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func newAdminApplicantsStatusCmd() *cobra.Command {
	var (
		reason     string
		showReason bool
	)

	cmd := &cobra.Command{
		Use:   "set-status <applicant_id> <Approved|Rejected>",
		Short: "Decide an application",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			applicantID := args[0]
			status := model.ApplicationStatus(args[1])

			if status != model.ApplicationStatusApproved && status != model.ApplicationStatusRejected {
				return fmt.Errorf("status must be Approved or Rejected")
			}

			update := matchably.StatusUpdate{
				Status:                 status,
				RejectionReason:        reason,
				ShowReasonToInfluencer: showReason,
			}
			if err := gateway.AdminSetApplicationStatus(cmd.Context(), applicantID, update); err != nil {
				return fmt.Errorf("set status: %w", err)
			}

			fmt.Printf("Applicant %s: %s\n", applicantID, status)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Rejection reason")
	cmd.Flags().BoolVar(&showReason, "show-reason", false, "Make the reason visible to the creator")
	return cmd
}

func newAdminApplicantsExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <campaign_id>",
		Short: "Export applicants as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			data, err := gateway.AdminExportApplicants(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("export applicants: %w", err)
			}

			if output == "" || output == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Printf("Exported to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if omitted)")
	return cmd
}

// --- Users ---

func newAdminUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}
	cmd.AddCommand(
		newAdminUsersListCmd(),
		newAdminUsersBlockCmd(),
		newAdminUsersVerifyCmd(),
	)
	return cmd
}

func newAdminUsersListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := gateway.AdminUsers(cmd.Context(), page)
			if err != nil {
				return fmt.Errorf("list users: %w", err)
			}

			if len(users) == 0 {
				fmt.Println("No users found.")
				return nil
			}

			fmt.Printf("%-26s  %-20s  %-26s  %-8s  %s\n", "ID", "NAME", "EMAIL", "VERIFIED", "BLOCKED")
			fmt.Printf("%-26s  %-20s  %-26s  %-8s  %s\n", "--", "----", "-----", "--------", "-------")
			for _, u := range users {
				fmt.Printf("%-26s  %-20s  %-26s  %-8v  %v\n",
					u.ID, clip(u.Name, 20), clip(u.Email, 26), u.Verified, u.Blocked)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func newAdminUsersBlockCmd() *cobra.Command {
	var unblock bool

	cmd := &cobra.Command{
		Use:   "block <user_id>",
		Short: "Block or unblock a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := args[0]

			if err := gateway.AdminBlockUser(cmd.Context(), userID, !unblock); err != nil {
				return fmt.Errorf("block user: %w", err)
			}
			if unblock {
				fmt.Printf("User %s unblocked.\n", userID)
			} else {
				fmt.Printf("User %s blocked.\n", userID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unblock, "unblock", false, "Unblock instead of block")
	return cmd
}

func newAdminUsersVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <user_id>",
		Short: "Mark a user's email as verified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := args[0]

			if err := gateway.AdminVerifyUser(cmd.Context(), userID); err != nil {
				return fmt.Errorf("verify user: %w", err)
			}
			fmt.Printf("User %s verified.\n", userID)
			return nil
		},
	}
}

// --- Points and rewards ---

func newAdminPointsCmd() *cobra.Command {
	var adj matchably.PointAdjustment

	cmd := &cobra.Command{
		Use:   "points",
		Short: "Manually adjust a user's points",
		RunE: func(cmd *cobra.Command, args []string) error {
			if adj.Email == "" || adj.Reason == "" {
				return fmt.Errorf("--email and --reason required")
			}

			if err := gateway.AdminAdjustPoints(cmd.Context(), adj); err != nil {
				return fmt.Errorf("adjust points: %w", err)
			}
			fmt.Printf("Adjusted %s by %+d points.\n", adj.Email, adj.Points)
			return nil
		},
	}

	cmd.Flags().StringVar(&adj.Email, "email", "", "User email")
	cmd.Flags().IntVar(&adj.Points, "points", 0, "Point delta (negative to deduct)")
	cmd.Flags().StringVar(&adj.Reason, "reason", "", "Adjustment reason")
	return cmd
}

func newAdminRewardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "Review redemption requests",
	}
	cmd.AddCommand(newAdminRewardsListCmd(), newAdminRewardsDecideCmd())
	return cmd
}

func newAdminRewardsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List redemption requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			transactions, err := gateway.AdminRewardTransactions(cmd.Context())
			if err != nil {
				return fmt.Errorf("list reward transactions: %w", err)
			}

			if len(transactions) == 0 {
				fmt.Println("No reward transactions found.")
				return nil
			}

			fmt.Printf("%-26s  %-26s  %-20s  %-7s  %s\n", "ID", "EMAIL", "TIER", "POINTS", "STATUS")
			fmt.Printf("%-26s  %-26s  %-20s  %-7s  %s\n", "--", "-----", "----", "------", "------")
			for _, tx := range transactions {
				fmt.Printf("%-26s  %-26s  %-20s  %-7d  %s\n",
					tx.ID, clip(tx.Email, 26), clip(tx.Tier, 20), tx.Points, tx.Status)
			}
			return nil
		},
	}
}

func newAdminRewardsDecideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decide <transaction_id> <approved|denied>",
		Short: "Approve or deny a redemption",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, decision := args[0], args[1]

			if decision != "approved" && decision != "denied" {
				return fmt.Errorf("decision must be approved or denied")
			}

			if err := gateway.AdminDecideRewardTransaction(cmd.Context(), id, decision); err != nil {
				return fmt.Errorf("decide redemption: %w", err)
			}
			fmt.Printf("Transaction %s: %s\n", id, decision)
			return nil
		},
	}
}
