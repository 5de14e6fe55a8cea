package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/pkg/model"
)

func newGitConfigsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gitconfigs",
		Aliases: []string{"git"},
		Short:   "Inspect and manage git sync configurations",
	}
	cmd.AddCommand(
		newGitConfigsListCmd(),
		newGitConfigsGetCmd(),
		newGitConfigsAutoSyncCmd(),
		newGitConfigsDeleteCmd(),
	)
	return cmd
}

func newGitConfigsListCmd() *cobra.Command {
	var lf listFlags
	var search, autoSync string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List git sync configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			as, err := triState(autoSync)
			if err != nil {
				return err
			}
			filter := model.GitConfigFilter{Search: search, AutoSync: as}
			page, size := lf.pageSize()
			if err := stores.GitConfigs.Fetch(cmd.Context(), page, size, filter); err != nil {
				return err
			}
			return renderList(cmd, stores.GitConfigs.Snapshot(),
				[]string{"ID", "SERVER", "REPO", "BRANCH", "AUTO-SYNC", "LAST SYNC", "STATUS"},
				func(g model.GitConfig) []string {
					return []string{g.ID, g.ServerName, g.RepoURL, g.Branch,
						fmtBool(g.AutoSync), fmtAgePtr(g.LastSyncAt), g.LastSyncStatus}
				}, lf.columns)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVarP(&search, "search", "q", "", "Filter by repo URL or server name substring")
	cmd.Flags().StringVar(&autoSync, "auto-sync", "", "Filter by auto-sync state (true, false)")
	return cmd
}

func newGitConfigsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one git sync configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.GitConfigs.FetchDetail(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd, stores.GitConfigs.Snapshot().Selected)
		},
	}
}

func newGitConfigsAutoSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auto-sync <id> <on|off>",
		Short: "Turn automatic sync on or off",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var enabled bool
			switch args[1] {
			case "on":
				enabled = true
			case "off":
				enabled = false
			default:
				return fmt.Errorf("expected on or off, got %q", args[1])
			}
			if err := stores.GitConfigs.SetAutoSync(cmd.Context(), args[0], enabled); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Auto-sync for %s turned %s.\n", args[0], args[1])
			return nil
		},
	}
}

func newGitConfigsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a git sync configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("deleting a git configuration is irreversible; re-run with --yes to confirm")
			}
			if err := stores.GitConfigs.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Git configuration %s deleted.\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")
	return cmd
}
