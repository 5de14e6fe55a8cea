package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/internal/export"
	"github.com/opsdeck/opsdeck/pkg/model"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect and export the audit trail",
	}
	cmd.AddCommand(newAuditListCmd(), newAuditGetCmd(), newAuditExportCmd())
	return cmd
}

func auditFilterFlags(cmd *cobra.Command, actor, action, targetType, from, to *string) {
	cmd.Flags().StringVar(actor, "actor", "", "Filter by actor email substring")
	cmd.Flags().StringVar(action, "action", "", "Filter by action (e.g. user.suspend)")
	cmd.Flags().StringVar(targetType, "target-type", "", "Filter by target type")
	cmd.Flags().StringVar(from, "from", "", "Only entries at or after this RFC3339 time")
	cmd.Flags().StringVar(to, "to", "", "Only entries at or before this RFC3339 time")
}

func buildAuditFilter(actor, action, targetType, from, to string) (model.AuditFilter, error) {
	filter := model.AuditFilter{ActorEmail: actor, Action: action, TargetType: targetType}
	if from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return filter, fmt.Errorf("parse --from: %w", err)
		}
		filter.From = t
	}
	if to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return filter, fmt.Errorf("parse --to: %w", err)
		}
		filter.To = t
	}
	return filter, nil
}

func newAuditListCmd() *cobra.Command {
	var lf listFlags
	var actor, action, targetType, from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List audit entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := buildAuditFilter(actor, action, targetType, from, to)
			if err != nil {
				return err
			}
			page, size := lf.pageSize()
			if err := stores.Audit.Fetch(cmd.Context(), page, size, filter); err != nil {
				return err
			}
			return renderList(cmd, stores.Audit.Snapshot(),
				[]string{"ID", "ACTOR", "ACTION", "TARGET", "IP", "WHEN"},
				func(a model.AuditLog) []string {
					return []string{a.ID, a.ActorEmail, a.Action,
						a.TargetType + "/" + a.TargetID, a.IPAddress, fmtAge(a.CreatedAt)}
				}, lf.columns)
		},
	}

	lf.register(cmd)
	auditFilterFlags(cmd, &actor, &action, &targetType, &from, &to)
	return cmd
}

func newAuditGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one audit entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stores.Audit.FetchDetail(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd, stores.Audit.Snapshot().Selected)
		},
	}
}

func newAuditExportCmd() *cobra.Command {
	var format, dest string
	var actor, action, targetType, from, to string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the filtered audit trail",
		Long:  "Download the filtered audit trail as CSV or JSON, to a local directory or an s3://bucket/prefix destination.",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := buildAuditFilter(actor, action, targetType, from, to)
			if err != nil {
				return err
			}
			stores.Audit.SetFilters(filter)

			data, err := stores.Audit.Export(cmd.Context(), model.ExportFormat(format))
			if err != nil {
				return err
			}

			var sink export.Sink
			if export.IsS3(dest) {
				bucket, prefix, err := export.ParseS3Dest(dest)
				if err != nil {
					return err
				}
				s3sink, err := export.NewS3Sink(cmd.Context(), export.S3Config{Bucket: bucket, Prefix: prefix})
				if err != nil {
					return err
				}
				sink = s3sink
			} else {
				sink = export.FileSink{Dir: dest}
			}

			name := fmt.Sprintf("audit-%s.%s", time.Now().UTC().Format("20060102-150405"), format)
			saved, err := sink.Save(cmd.Context(), name, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bytes to %s\n", len(data), saved)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Export format (csv, json)")
	cmd.Flags().StringVar(&dest, "dest", ".", "Destination directory or s3://bucket/prefix")
	auditFilterFlags(cmd, &actor, &action, &targetType, &from, &to)
	return cmd
}
