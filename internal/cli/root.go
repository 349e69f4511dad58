// Package cli implements the matchably command line client.
package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/matchably/internal/config"
	"github.com/me/matchably/internal/logging"
	"github.com/me/matchably/internal/session"
	"github.com/me/matchably/pkg/matchably"
)

var (
	flagServer     string
	flagDebug      bool
	flagLogLevel   string
	flagLogFormat  string
	flagAdminToken string

	logger   *slog.Logger
	gateway  *matchably.Client
	sessions *session.Store
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// defaultServer returns the default backend URL, checking the
// MATCHABLY_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv("MATCHABLY_SERVER"); s != "" {
		return s
	}
	return ""
}

// NewRootCmd creates the root cobra command for the matchably CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "matchably",
		Short: "Matchably — creator campaign marketplace client",
		Long:  "Matchably browses campaigns, submits applications and content, and manages rewards on the Matchably marketplace.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.New(logging.ParseLevel(flagLogLevel), flagLogFormat)

			clientCfg, err := config.LoadClientConfig()
			if err != nil {
				return err
			}
			cfg := clientCfg.GatewayConfig()
			if flagServer != "" {
				cfg.BaseURL = flagServer
			}
			if flagAdminToken == "" {
				flagAdminToken = os.Getenv("MATCHABLY_ADMIN_TOKEN")
			}
			cfg.AdminToken = flagAdminToken

			tokens := &session.FileTokenSource{}
			if token, err := tokens.Load(); err == nil && token != "" {
				cfg.Token = token
			}

			gateway = matchably.NewClient(cfg, logger)
			sessions = session.NewStore(gateway, tokens, logger)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "Matchably API URL (or MATCHABLY_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")
	root.PersistentFlags().StringVar(&flagAdminToken, "admin-token", "", "Admin API token (or MATCHABLY_ADMIN_TOKEN env)")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newCampaignsCmd(),
		newApplyCmd(),
		newApplicationsCmd(),
		newSubmissionCmd(),
		newRewardsCmd(),
		newProfileCmd(),
		newAdminCmd(),
	)

	return root
}
