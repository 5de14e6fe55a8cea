// Package cli implements the opsdeck command line console.
package cli

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/internal/api"
	"github.com/opsdeck/opsdeck/internal/config"
	"github.com/opsdeck/opsdeck/internal/logging"
	"github.com/opsdeck/opsdeck/internal/store"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string
	flagOutput    string

	cfg    config.Config
	logger *slog.Logger
	client *api.Client
	stores *store.Set
)

// defaultServer returns the OPSDECK_SERVER env var if set; otherwise the
// configured or built-in URL applies at PreRun time.
func defaultServer() string {
	return os.Getenv("OPSDECK_SERVER")
}

// NewRootCmd creates the root cobra command for the opsdeck CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "opsdeck",
		Short: "OpsDeck — admin console for the server management platform",
		Long:  "OpsDeck inspects and manages users, servers, billing, and platform resources from the terminal.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Default()
			if dir, err := config.Dir(); err == nil {
				if loaded, err := config.Load(filepath.Join(dir, "config.toml")); err == nil {
					cfg = loaded
				}
			}
			if flagServer != "" {
				cfg.ServerURL = flagServer
			}
			if flagDebug {
				flagLogLevel = "debug"
			}
			if flagLogLevel == "" {
				flagLogLevel = cfg.LogLevel
			}
			if flagLogFormat == "" {
				flagLogFormat = cfg.LogFormat
			}
			logger = logging.NewLogger(logging.ParseLevel(flagLogLevel), flagLogFormat)
			client = api.NewClient(cfg.ServerURL, config.LoadToken(), logger)
			stores = store.NewSet(client, logger)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "OpsDeck API URL (or OPSDECK_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json, auto)")
	root.PersistentFlags().StringVarP(&flagOutput, "output", "o", "table", "Output format (table, json)")

	root.AddCommand(
		newLoginCmd(),
		newConsoleCmd(),
		newUsersCmd(),
		newServersCmd(),
		newSubscriptionsCmd(),
		newAPIKeysCmd(),
		newAuditCmd(),
		newTemplatesCmd(),
		newWebhooksCmd(),
		newBackupsCmd(),
		newGitConfigsCmd(),
		newInvitesCmd(),
	)

	return root
}
