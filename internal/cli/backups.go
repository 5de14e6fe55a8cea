package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/pkg/model"
)

func newBackupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "Inspect and manage scheduled backups",
	}
	cmd.AddCommand(
		newBackupsListCmd(),
		newBackupsGetCmd(),
		newBackupsEnableCmd(),
		newBackupsDisableCmd(),
		newBackupsRunCmd(),
		newBackupsDeleteCmd(),
	)
	return cmd
}

func newBackupsListCmd() *cobra.Command {
	var lf listFlags
	var search, enabled string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scheduled backups",
		RunE: func(cmd *cobra.Command, args []string) error {
			en, err := triState(enabled)
			if err != nil {
				return err
			}
			filter := model.BackupFilter{Search: search, Enabled: en}
			page, size := lf.pageSize()
			if err := stores.Backups.Fetch(cmd.Context(), page, size, filter); err != nil {
				return err
			}
			return renderList(cmd, stores.Backups.Snapshot(),
				[]string{"ID", "SERVER", "SCHEDULE", "ENABLED", "RETENTION", "LAST RUN", "STATUS", "SIZE"},
				func(b model.ScheduledBackup) []string {
					return []string{b.ID, b.ServerName, b.Schedule, fmtBool(b.Enabled),
						fmt.Sprintf("%dd", b.RetentionDays), fmtAgePtr(b.LastRunAt), b.LastStatus, fmtBytes(b.SizeBytes)}
				}, lf.columns)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVarP(&search, "search", "q", "", "Filter by server name substring")
	cmd.Flags().StringVar(&enabled, "enabled", "", "Filter by enabled state (true, false)")
	return cmd
}

func newBackupsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one scheduled backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Backups.FetchDetail(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd, stores.Backups.Snapshot().Selected)
		},
	}
}

func newBackupsEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable <id>",
		Short: "Enable a backup schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Backups.SetEnabled(cmd.Context(), args[0], true); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup %s enabled.\n", args[0])
			return nil
		},
	}
}

func newBackupsDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <id>",
		Short: "Disable a backup schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Backups.SetEnabled(cmd.Context(), args[0], false); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup %s disabled.\n", args[0])
			return nil
		},
	}
}

func newBackupsRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <id>",
		Short: "Trigger a backup run immediately",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Backups.RunNow(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup %s triggered.\n", args[0])
			return nil
		},
	}
}

func newBackupsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a scheduled backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("deleting a backup schedule is irreversible; re-run with --yes to confirm")
			}
			if err := stores.Backups.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup %s deleted.\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")
	return cmd
}
