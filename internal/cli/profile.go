package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your account",
	}
	cmd.AddCommand(newProfileSocialCmd(), newProfilePasswordCmd())
	return cmd
}

func newProfileSocialCmd() *cobra.Command {
	var (
		instagram string
		tiktok    string
	)

	cmd := &cobra.Command{
		Use:   "social",
		Short: "Update your Instagram and TikTok handles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if instagram == "" && tiktok == "" {
				return fmt.Errorf("at least one of --instagram or --tiktok required")
			}

			if err := gateway.UpdateSocial(cmd.Context(), instagram, tiktok); err != nil {
				return fmt.Errorf("update social handles: %w", err)
			}

			// Cached identity now carries stale handles.
			sessions.Invalidate()
			fmt.Println("Social handles updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&instagram, "instagram", "", "Instagram handle")
	cmd.Flags().StringVar(&tiktok, "tiktok", "", "TikTok handle")
	return cmd
}

func newProfilePasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			fmt.Print("Current password: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			oldPassword := strings.TrimSpace(line)

			fmt.Print("New password: ")
			line, err = reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			newPassword := strings.TrimSpace(line)

			if newPassword == "" {
				return fmt.Errorf("new password cannot be empty")
			}

			if err := gateway.ChangePassword(cmd.Context(), oldPassword, newPassword); err != nil {
				return fmt.Errorf("change password: %w", err)
			}

			// The backend rotates tokens on password change.
			if err := sessions.SignOut(); err != nil {
				logger.Warn("sign out after password change failed", "error", err)
			}
			fmt.Println("Password changed, please sign in again.")
			return nil
		},
	}
}
