package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRewardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "Points, redemptions, and referrals",
	}
	cmd.AddCommand(newRewardsPointsCmd(), newRewardsRedeemCmd(), newRewardsReferralCmd())
	return cmd
}

func newRewardsPointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "points",
		Short: "Show your point balance and the reward tiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, tiers, err := gateway.Points(cmd.Context())
			if err != nil {
				return fmt.Errorf("get points: %w", err)
			}

			fmt.Printf("Points: %d\n", balance.Points)

			if len(balance.History) > 0 {
				fmt.Println("\nHistory:")
				for _, entry := range balance.History {
					fmt.Printf("  %+d  %s", entry.Points, entry.Reason)
					if entry.Date != "" {
						fmt.Printf("  (%s)", entry.Date)
					}
					fmt.Println()
				}
			}

			if len(tiers) > 0 {
				fmt.Println("\nTiers:")
				for _, tier := range tiers {
					fmt.Printf("  %-20s  %d points  (id %s)\n", tier.Name, tier.Points, tier.ID)
				}
			}
			return nil
		},
	}
}

func newRewardsRedeemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "redeem <tier_id>",
		Short: "Exchange points for a reward tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tierID := args[0]

			if err := gateway.Redeem(cmd.Context(), tierID); err != nil {
				return fmt.Errorf("redeem: %w", err)
			}
			fmt.Println("Redemption requested, pending admin approval.")
			return nil
		},
	}
}

func newRewardsReferralCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "referral",
		Short: "Show your referral link and referred signups",
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := gateway.Referral(cmd.Context())
			if err != nil {
				return fmt.Errorf("get referral info: %w", err)
			}

			fmt.Printf("Link: %s\n", info.ReferralLink)
			if info.Progress != "" {
				fmt.Printf("Progress: %s\n", info.Progress)
			}
			if len(info.Table) > 0 {
				fmt.Println("\nReferred:")
				for _, entry := range info.Table {
					fmt.Printf("  %-20s  %-12s  %+d points\n", entry.Name, entry.Status, entry.Points)
				}
			}
			return nil
		},
	}
}
