package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/pkg/model"
)

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Moderate community configuration templates",
	}
	cmd.AddCommand(
		newTemplatesListCmd(),
		newTemplatesGetCmd(),
		newTemplatesApproveCmd(),
		newTemplatesRejectCmd(),
		newTemplatesDeleteCmd(),
	)
	return cmd
}

func newTemplatesListCmd() *cobra.Command {
	var lf listFlags
	var search, status, category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := model.TemplateFilter{Search: search, Status: model.TemplateStatus(status), Category: category}
			page, size := lf.pageSize()
			if err := stores.Templates.Fetch(cmd.Context(), page, size, filter); err != nil {
				return err
			}
			return renderList(cmd, stores.Templates.Snapshot(),
				[]string{"ID", "NAME", "AUTHOR", "CATEGORY", "STATUS", "DOWNLOADS"},
				func(t model.Template) []string {
					return []string{t.ID, t.Name, t.AuthorEmail, t.Category,
						string(t.Status), fmt.Sprint(t.Downloads)}
				}, lf.columns)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVarP(&search, "search", "q", "", "Match name or description")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (PENDING, APPROVED, REJECTED)")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	return cmd
}

func newTemplatesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one template including its body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Templates.FetchDetail(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd, stores.Templates.Snapshot().Selected)
		},
	}
}

func newTemplatesApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Templates.Approve(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Template %s approved.\n", args[0])
			return nil
		},
	}
}

func newTemplatesRejectCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a pending template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Templates.Reject(cmd.Context(), args[0], reason); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Template %s rejected.\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reason for rejection (required)")
	return cmd
}

func newTemplatesDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("deleting a template is irreversible; re-run with --yes to confirm")
			}
			if err := stores.Templates.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Template %s deleted.\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")
	return cmd
}
