package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/matchably/pkg/matchably"
)

func newLoginCmd() *cobra.Command {
	var (
		email       string
		password    string
		googleToken string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to Matchably",
		Long:  "Sign in with email and password (or a Google ID token) and store the session token for later commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if googleToken != "" {
				user, err := sessions.GoogleSignIn(cmd.Context(), googleToken)
				if err != nil {
					return fmt.Errorf("google sign in: %w", err)
				}
				fmt.Printf("Signed in as %s (%s)\n", user.Name, user.Email)
				return nil
			}

			reader := bufio.NewReader(os.Stdin)
			if email == "" {
				fmt.Print("Email: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read email: %w", err)
				}
				email = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Print("Password: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimSpace(line)
			}
			if email == "" || password == "" {
				return fmt.Errorf("email and password cannot be empty")
			}

			user, err := sessions.SignIn(cmd.Context(), matchably.Credentials{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("sign in: %w", err)
			}

			fmt.Printf("Signed in as %s (%s)\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted if omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted if omitted)")
	cmd.Flags().StringVar(&googleToken, "google-token", "", "Google ID token for OAuth sign in")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sessions.SignOut(); err != nil {
				return fmt.Errorf("sign out: %w", err)
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := sessions.Verify(cmd.Context())
			if err != nil {
				return fmt.Errorf("verify session: %w", err)
			}
			if user == nil {
				fmt.Println("Not signed in.")
				return nil
			}

			fmt.Printf("Name:  %s\n", user.Name)
			fmt.Printf("Email: %s\n", user.Email)
			if user.Role != "" {
				fmt.Printf("Role:  %s\n", user.Role)
			}
			if user.InstagramID != "" {
				fmt.Printf("Instagram: %s\n", user.InstagramID)
			}
			if user.TikTokID != "" {
				fmt.Printf("TikTok:    %s\n", user.TikTokID)
			}
			return nil
		},
	}
}
