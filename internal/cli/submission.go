package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/matchably/pkg/model"
)

func newSubmissionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submission",
		Short: "Manage content submissions for approved campaigns",
	}
	cmd.AddCommand(newSubmissionShowCmd(), newSubmissionSetCmd(), newSubmissionDeleteCmd())
	return cmd
}

func newSubmissionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <campaign_id>",
		Short: "Show your submitted post URLs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			sub, err := gateway.GetSubmission(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get submission: %w", err)
			}
			if sub == nil {
				fmt.Println("No submission yet.")
				return nil
			}

			if len(sub.InstagramURLs) > 0 {
				fmt.Println("Instagram:")
				for _, u := range sub.InstagramURLs {
					fmt.Printf("  - %s\n", u)
				}
			}
			if len(sub.TikTokURLs) > 0 {
				fmt.Println("TikTok:")
				for _, u := range sub.TikTokURLs {
					fmt.Printf("  - %s\n", u)
				}
			}
			return nil
		},
	}
}

func newSubmissionSetCmd() *cobra.Command {
	var (
		instagramURLs []string
		tiktokURLs    []string
	)

	cmd := &cobra.Command{
		Use:   "set <campaign_id>",
		Short: "Create or replace your post URLs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if len(instagramURLs) == 0 && len(tiktokURLs) == 0 {
				return fmt.Errorf("at least one --instagram-url or --tiktok-url required")
			}

			sub := model.PostSubmission{
				CampaignID:    id,
				InstagramURLs: instagramURLs,
				TikTokURLs:    tiktokURLs,
			}

			existing, err := gateway.GetSubmission(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get submission: %w", err)
			}

			if existing != nil {
				err = gateway.UpdateSubmission(cmd.Context(), id, sub)
			} else {
				err = gateway.CreateSubmission(cmd.Context(), sub)
			}
			if err != nil {
				return fmt.Errorf("save submission: %w", err)
			}

			fmt.Printf("Submission saved for campaign %s.\n", id)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&instagramURLs, "instagram-url", nil, "Instagram post URL (repeatable)")
	cmd.Flags().StringSliceVar(&tiktokURLs, "tiktok-url", nil, "TikTok post URL (repeatable)")
	return cmd
}

func newSubmissionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <campaign_id>",
		Short: "Remove your submitted post URLs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if err := gateway.DeleteSubmission(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete submission: %w", err)
			}
			fmt.Printf("Submission removed for campaign %s.\n", id)
			return nil
		},
	}
}
