package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/pkg/model"
)

func newSubscriptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subs"},
		Short:   "Inspect and manage billing subscriptions",
	}
	cmd.AddCommand(
		newSubscriptionsListCmd(),
		newSubscriptionsGetCmd(),
		newSubscriptionsCancelCmd(),
		newSubscriptionsSetPlanCmd(),
		newSubscriptionsExtendTrialCmd(),
	)
	return cmd
}

func newSubscriptionsListCmd() *cobra.Command {
	var lf listFlags
	var email, status, plan string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := model.SubscriptionFilter{UserEmail: email, Status: model.SubscriptionStatus(status), Plan: plan}
			page, size := lf.pageSize()
			if err := stores.Subscriptions.Fetch(cmd.Context(), page, size, filter); err != nil {
				return err
			}
			return renderList(cmd, stores.Subscriptions.Snapshot(),
				[]string{"ID", "USER", "PLAN", "STATUS", "AMOUNT", "PERIOD END"},
				func(sub model.Subscription) []string {
					return []string{sub.ID, sub.UserEmail, sub.Plan, string(sub.Status),
						fmtMoney(sub.AmountCents, sub.Currency), fmtAge(sub.CurrentPeriodEnd)}
				}, lf.columns)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&email, "email", "", "Filter by user email substring")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (ACTIVE, TRIALING, PAST_DUE, CANCELED)")
	cmd.Flags().StringVar(&plan, "plan", "", "Filter by plan")
	return cmd
}

func newSubscriptionsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one subscription with its invoice history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Subscriptions.FetchDetail(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd, stores.Subscriptions.Snapshot().Selected)
		},
	}
}

func newSubscriptionsCancelCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Subscriptions.Cancel(cmd.Context(), args[0], reason); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Subscription %s canceled.\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reason for cancellation (required)")
	return cmd
}

func newSubscriptionsSetPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-plan <id> <plan>",
		Short: "Override the billed plan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Subscriptions.OverridePlan(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Subscription %s moved to plan %s.\n", args[0], args[1])
			return nil
		},
	}
}

func newSubscriptionsExtendTrialCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "extend-trial <id>",
		Short: "Extend a subscription's trial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Subscriptions.ExtendTrial(cmd.Context(), args[0], days); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Trial for %s extended by %d days.\n", args[0], days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days to extend (required, positive)")
	return cmd
}
