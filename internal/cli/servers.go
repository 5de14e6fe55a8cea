package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/internal/store"
	"github.com/opsdeck/opsdeck/pkg/model"
)

func newServersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "servers",
		Short: "Inspect and manage customer servers",
	}
	cmd.AddCommand(
		newServersListCmd(),
		newServersGetCmd(),
		newServersDeleteCmd(),
		newCollaboratorsCmd(),
	)
	return cmd
}

func newServersListCmd() *cobra.Command {
	var lf listFlags
	var search, owner, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := model.ServerFilter{Search: search, OwnerEmail: owner, Status: model.ServerStatus(status)}
			page, size := lf.pageSize()
			if err := stores.Servers.Fetch(cmd.Context(), page, size, filter); err != nil {
				return err
			}
			return renderList(cmd, stores.Servers.Snapshot(),
				[]string{"ID", "NAME", "HOSTNAME", "OWNER", "STATUS", "AGENT", "DISK"},
				func(sv model.Server) []string {
					return []string{sv.ID, sv.Name, sv.Hostname, sv.OwnerEmail,
						string(sv.Status), sv.AgentVersion, fmtBytes(sv.DiskUsedB)}
				}, lf.columns)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVarP(&search, "search", "q", "", "Match name or hostname")
	cmd.Flags().StringVar(&owner, "owner", "", "Filter by owner email")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (ONLINE, OFFLINE, PROVISIONING, SUSPENDED)")
	return cmd
}

func newServersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one server with collaborators, git sync, and backups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Servers.FetchDetail(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd, stores.Servers.Snapshot().Selected)
		},
	}
}

func newServersDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("deleting a server is irreversible; re-run with --yes to confirm")
			}
			if err := stores.Servers.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Server %s deleted.\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")
	return cmd
}

func newCollaboratorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collaborators",
		Short: "Manage a server's collaborators",
	}
	cmd.AddCommand(newCollaboratorsListCmd(), newCollaboratorsRemoveCmd())
	return cmd
}

func newCollaboratorsListCmd() *cobra.Command {
	var lf listFlags
	var role string

	cmd := &cobra.Command{
		Use:   "list <server-id>",
		Short: "List a server's collaborators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.NewCollaborators(client, args[0], logger)
			page, size := lf.pageSize()
			if err := st.Fetch(cmd.Context(), page, size, model.CollaboratorFilter{Role: role}); err != nil {
				return err
			}
			return renderList(cmd, st.Snapshot(),
				[]string{"ID", "EMAIL", "ROLE", "ADDED"},
				func(c model.Collaborator) []string {
					return []string{c.ID, c.Email, c.Role, fmtAge(c.AddedAt)}
				}, lf.columns)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&role, "role", "", "Filter by role (admin, editor, viewer)")
	return cmd
}

func newCollaboratorsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <server-id> <collaborator-id>",
		Short: "Revoke a collaborator's access",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.NewCollaborators(client, args[0], logger)
			if err := st.Remove(cmd.Context(), args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Collaborator %s removed from %s.\n", args[1], args[0])
			return nil
		},
	}
}
