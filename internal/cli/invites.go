package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/pkg/model"
)

func newInvitesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invites",
		Short: "Inspect and manage invite codes",
	}
	cmd.AddCommand(
		newInvitesListCmd(),
		newInvitesGetCmd(),
		newInvitesCreateCmd(),
		newInvitesRevokeCmd(),
	)
	return cmd
}

func newInvitesListCmd() *cobra.Command {
	var lf listFlags
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invite codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := model.InviteFilter{Status: model.InviteStatus(status)}
			page, size := lf.pageSize()
			if err := stores.Invites.Fetch(cmd.Context(), page, size, filter); err != nil {
				return err
			}
			return renderList(cmd, stores.Invites.Snapshot(),
				[]string{"ID", "CODE", "CREATED BY", "USES", "STATUS", "EXPIRES"},
				func(i model.InviteCode) []string {
					return []string{i.ID, i.Code, i.CreatedBy,
						fmt.Sprintf("%d/%d", i.Uses, i.MaxUses), string(i.Status), fmtAgePtr(i.ExpiresAt)}
				}, lf.columns)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (ACTIVE, EXHAUSTED, REVOKED)")
	return cmd
}

func newInvitesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one invite code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Invites.FetchDetail(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd, stores.Invites.Snapshot().Selected)
		},
	}
}

func newInvitesCreateCmd() *cobra.Command {
	var maxUses, expiresInDays int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new invite code",
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := stores.Invites.Create(cmd.Context(), maxUses, expiresInDays)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created invite %s: %s\n", inv.ID, inv.Code)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxUses, "max-uses", 1, "How many signups the code admits")
	cmd.Flags().IntVar(&expiresInDays, "expires-in-days", 30, "Days until the code expires (0 for no expiry)")
	return cmd
}

func newInvitesRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <id>",
		Short: "Revoke an invite code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Invites.Revoke(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Invite %s revoked.\n", args[0])
			return nil
		},
	}
}
