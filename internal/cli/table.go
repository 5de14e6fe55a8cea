package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/internal/exprcol"
	"github.com/opsdeck/opsdeck/internal/store"
)

// printJSON writes v as indented JSON, used for --output json.
func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// renderList prints one page of a resource listing: a table plus the
// pagination footer. Extra computed columns come from --columns definitions
// evaluated against each row's JSON form.
func renderList[T, D any](cmd *cobra.Command, snap store.Snapshot[T, D], headers []string, row func(T) []string, columnDefs []string) error {
	if flagOutput == "json" {
		return printJSON(cmd, snap.Items)
	}

	cols, err := exprcol.ParseColumns(columnDefs)
	if err != nil {
		return err
	}
	for _, c := range cols {
		headers = append(headers, strings.ToUpper(c.Name))
	}
	var ev *exprcol.Evaluator
	if len(cols) > 0 {
		ev = exprcol.NewEvaluator()
	}

	if len(snap.Items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, item := range snap.Items {
		cells := row(item)
		if len(cols) > 0 {
			m, err := rowMap(item)
			if err != nil {
				return err
			}
			for _, c := range cols {
				v, err := ev.Eval(c, m)
				if err != nil {
					return err
				}
				cells = append(cells, v)
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	first, last := snap.VisibleRange()
	fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d-%d of %d (page %d of %d)\n",
		first, last, snap.Total, snap.Page+1, snap.TotalPages())
	return nil
}

// rowMap exposes an item to column expressions as its wire-format map.
func rowMap(item any) (map[string]any, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// fmtAge renders a timestamp as a relative age ("3 days ago").
func fmtAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

// fmtAgePtr renders an optional timestamp.
func fmtAgePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return fmtAge(*t)
}

// fmtBytes renders a byte count in binary units.
func fmtBytes(n int64) string {
	return humanize.IBytes(uint64(n))
}

// fmtMoney renders an amount in cents with its currency code.
func fmtMoney(cents int64, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(cents)/100, currency)
}

// fmtBool renders a toggle column.
func fmtBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
