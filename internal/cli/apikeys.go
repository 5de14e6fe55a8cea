package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/pkg/model"
)

func newAPIKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikeys",
		Short: "Inspect and manage API keys",
	}
	cmd.AddCommand(
		newAPIKeysListCmd(),
		newAPIKeysGetCmd(),
		newAPIKeysRevokeCmd(),
		newAPIKeysRegenerateCmd(),
	)
	return cmd
}

func newAPIKeysListCmd() *cobra.Command {
	var lf listFlags
	var email, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List API keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := model.APIKeyFilter{UserEmail: email, Status: model.APIKeyStatus(status)}
			page, size := lf.pageSize()
			if err := stores.APIKeys.Fetch(cmd.Context(), page, size, filter); err != nil {
				return err
			}
			return renderList(cmd, stores.APIKeys.Snapshot(),
				[]string{"ID", "USER", "LABEL", "PREFIX", "STATUS", "LAST USED"},
				func(k model.APIKey) []string {
					return []string{k.ID, k.UserEmail, k.Label, k.Prefix,
						string(k.Status), fmtAgePtr(k.LastUsedAt)}
				}, lf.columns)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&email, "email", "", "Filter by user email substring")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (ACTIVE, REVOKED)")
	return cmd
}

func newAPIKeysGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one API key with its scopes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.APIKeys.FetchDetail(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd, stores.APIKeys.Snapshot().Selected)
		},
	}
}

func newAPIKeysRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <id>",
		Short: "Revoke an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.APIKeys.Revoke(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API key %s revoked.\n", args[0])
			return nil
		},
	}
}

func newAPIKeysRegenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate <id>",
		Short: "Rotate an API key and print the new token once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := stores.APIKeys.Regenerate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "New token (shown once): %s\n", token)
			return nil
		},
	}
}
