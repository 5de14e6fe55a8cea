package cli

import "github.com/spf13/cobra"

// listFlags are the pagination and column flags shared by all list commands.
type listFlags struct {
	page    int
	size    int
	columns []string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 0, "Zero-based page number")
	cmd.Flags().IntVar(&f.size, "page-size", 0, "Page size (default from config)")
	cmd.Flags().StringArrayVar(&f.columns, "columns", nil,
		"Extra computed column name=expr; the row is available to expr as `item`")
}

func (f listFlags) pageSize() (int, int) {
	size := f.size
	if size <= 0 {
		size = cfg.PageSize
	}
	return f.page, size
}
