package tui

import (
	"context"

	"github.com/opsdeck/opsdeck/internal/store"
)

// action is one mutation a pane offers on the selected row. Actions that set
// needsInput open the confirm modal with a text field; the typed value is
// passed as input. run may return a notice string shown in the footer on
// success (e.g. a one-time token).
type action struct {
	key        string
	label      string
	needsInput bool
	global     bool // does not require a selected row
	prompt     string
	run        func(ctx context.Context, id, input string) (string, error)
}

// paneStatus is the slice of store state a renderer needs each frame.
type paneStatus struct {
	Loading       bool
	LoadingDetail bool
	Err           string
	Page          int
	TotalPages    int
	Total         int
	From, To      int
	HasPrev       bool
	HasNext       bool
	HasDetail     bool
	SelectedID    string
}

// row is one rendered table line plus the id the actions operate on.
type row struct {
	id    string
	cells []string
}

// pane adapts one typed resource store to the uniform surface the console
// model drives. All closures capture the store; blocking calls are expected
// to run inside tea.Cmd goroutines, never in Update.
type pane struct {
	title       string
	columns     []string
	searchHint  string
	rows        func() []row
	status      func() paneStatus
	fetch       func(ctx context.Context, page int) error
	search      func(ctx context.Context, q string) error
	openDetail  func(ctx context.Context, id string) error
	closeDetail func()
	clearError  func()
	detailView  func(st Styles) string
	actions     []action
}

// newPane builds a pane over one resource store. cells renders a list row,
// rowID extracts its id, searchFilter maps the debounced query to the
// resource's filter, and detail renders the loaded detail record.
func newPane[T, D, F any](
	title string,
	st *store.Store[T, D, F],
	size int,
	columns []string,
	searchHint string,
	cells func(T) []string,
	rowID func(T) string,
	searchFilter func(q string) F,
	detail func(st Styles, d *D) string,
	actions []action,
) pane {
	return pane{
		title:      title,
		columns:    columns,
		searchHint: searchHint,
		rows: func() []row {
			snap := st.Snapshot()
			rows := make([]row, len(snap.Items))
			for i, item := range snap.Items {
				rows[i] = row{id: rowID(item), cells: cells(item)}
			}
			return rows
		},
		status: func() paneStatus {
			snap := st.Snapshot()
			from, to := snap.VisibleRange()
			return paneStatus{
				Loading:       snap.Loading,
				LoadingDetail: snap.LoadingDetail,
				Err:           snap.Err,
				Page:          snap.Page,
				TotalPages:    snap.TotalPages(),
				Total:         snap.Total,
				From:          from,
				To:            to,
				HasPrev:       snap.HasPrev(),
				HasNext:       snap.HasNext(),
				HasDetail:     snap.Selected != nil,
				SelectedID:    snap.SelectedID,
			}
		},
		fetch: func(ctx context.Context, page int) error {
			return st.Fetch(ctx, page, size, st.Filters())
		},
		search: func(ctx context.Context, q string) error {
			return st.Fetch(ctx, 0, size, searchFilter(q))
		},
		openDetail:  st.FetchDetail,
		closeDetail: st.ClearSelected,
		clearError:  st.ClearError,
		detailView: func(styles Styles) string {
			snap := st.Snapshot()
			if snap.Selected == nil {
				return ""
			}
			return detail(styles, snap.Selected)
		},
		actions: actions,
	}
}
