package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/pkg/model"
)

func newWebhooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhooks",
		Short: "Inspect and manage webhook endpoints",
	}
	cmd.AddCommand(
		newWebhooksListCmd(),
		newWebhooksGetCmd(),
		newWebhooksEnableCmd(),
		newWebhooksDisableCmd(),
		newWebhooksDeleteCmd(),
	)
	return cmd
}

// triState parses "", "true", or "false" into a tri-state filter value.
func triState(raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("expected true or false, got %q", raw)
	}
	return &v, nil
}

func newWebhooksListCmd() *cobra.Command {
	var lf listFlags
	var email, enabled string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List webhooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			en, err := triState(enabled)
			if err != nil {
				return err
			}
			filter := model.WebhookFilter{UserEmail: email, Enabled: en}
			page, size := lf.pageSize()
			if err := stores.Webhooks.Fetch(cmd.Context(), page, size, filter); err != nil {
				return err
			}
			return renderList(cmd, stores.Webhooks.Snapshot(),
				[]string{"ID", "USER", "URL", "EVENTS", "ENABLED", "FAILURES", "LAST DELIVERY"},
				func(w model.Webhook) []string {
					return []string{w.ID, w.UserEmail, w.URL, strings.Join(w.Events, ","),
						fmtBool(w.Enabled), fmt.Sprint(w.FailureCount), fmtAgePtr(w.LastDeliveryAt)}
				}, lf.columns)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&email, "email", "", "Filter by user email substring")
	cmd.Flags().StringVar(&enabled, "enabled", "", "Filter by enabled state (true, false)")
	return cmd
}

func newWebhooksGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one webhook with its recent deliveries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Webhooks.FetchDetail(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd, stores.Webhooks.Snapshot().Selected)
		},
	}
}

func newWebhooksEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable <id>",
		Short: "Enable deliveries for a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Webhooks.SetEnabled(cmd.Context(), args[0], true); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Webhook %s enabled.\n", args[0])
			return nil
		},
	}
}

func newWebhooksDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <id>",
		Short: "Disable deliveries for a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Webhooks.SetEnabled(cmd.Context(), args[0], false); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Webhook %s disabled.\n", args[0])
			return nil
		},
	}
}

func newWebhooksDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("deleting a webhook is irreversible; re-run with --yes to confirm")
			}
			if err := stores.Webhooks.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Webhook %s deleted.\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")
	return cmd
}
