package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/pkg/model"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect and manage accounts",
	}
	cmd.AddCommand(
		newUsersListCmd(),
		newUsersGetCmd(),
		newUsersSuspendCmd(),
		newUsersUnsuspendCmd(),
		newUsersDeleteCmd(),
		newUsersSetPlanCmd(),
		newUsersExtendTrialCmd(),
	)
	return cmd
}

func newUsersListCmd() *cobra.Command {
	var lf listFlags
	var email, status, plan string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := model.UserFilter{Email: email, Status: model.UserStatus(status), Plan: plan}
			page, size := lf.pageSize()
			if err := stores.Users.Fetch(cmd.Context(), page, size, filter); err != nil {
				return err
			}
			return renderList(cmd, stores.Users.Snapshot(),
				[]string{"ID", "EMAIL", "NAME", "STATUS", "PLAN", "SERVERS", "LAST LOGIN"},
				func(u model.User) []string {
					return []string{u.ID, u.Email, u.Name, string(u.Status), u.Plan,
						fmt.Sprint(u.ServerCount), fmtAgePtr(u.LastLoginAt)}
				}, lf.columns)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&email, "email", "", "Filter by email substring")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (ACTIVE, SUSPENDED, PENDING)")
	cmd.Flags().StringVar(&plan, "plan", "", "Filter by plan")
	return cmd
}

func newUsersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one account with its servers and invoices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Users.FetchDetail(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd, stores.Users.Snapshot().Selected)
		},
	}
}

func newUsersSuspendCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "suspend <id>",
		Short: "Suspend an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Users.Suspend(cmd.Context(), args[0], reason); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s suspended.\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reason for suspension (required)")
	return cmd
}

func newUsersUnsuspendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unsuspend <id>",
		Short: "Restore a suspended account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Users.Unsuspend(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s restored.\n", args[0])
			return nil
		},
	}
}

func newUsersDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("deleting an account is irreversible; re-run with --yes to confirm")
			}
			if err := stores.Users.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s deleted.\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")
	return cmd
}

func newUsersSetPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-plan <id> <plan>",
		Short: "Override an account's plan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Users.OverridePlan(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s moved to plan %s.\n", args[0], args[1])
			return nil
		},
	}
}

func newUsersExtendTrialCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "extend-trial <id>",
		Short: "Extend an account's trial period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Users.ExtendTrial(cmd.Context(), args[0], days); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Trial for %s extended by %d days.\n", args[0], days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days to extend (required, positive)")
	return cmd
}
