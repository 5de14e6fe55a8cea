// Package tui implements the interactive admin console: one tab per resource
// type, a table pane over the resource store's current page, a detail pane,
// debounced search, and confirm modals for every mutation.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/store"
)

const searchDebounce = 300 * time.Millisecond

// Options configure the console.
type Options struct {
	Context   context.Context
	Stores    *store.Set
	PageSize  int
	ThemeName string
	ExportDir string
}

// Model is the root application state.
type Model struct {
	ctx    context.Context
	stores *store.Set
	panes  []pane
	active int

	theme  Theme
	styles Styles
	width  int
	height int
	ready  bool

	selectedRow int
	detailOpen  bool
	detailView  viewport.Model

	searchMode  bool
	searchInput textinput.Model
	searchSeq   int

	modal    *modalState
	notice   string
	showHelp bool
}

// modalState is the confirm dialog for a pending action. It stays open when
// the action fails so the operator can correct the input or read the reason.
type modalState struct {
	act   action
	id    string
	input textinput.Model
	err   string
	busy  bool
}

// New creates the console model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	size := opts.PageSize
	if size <= 0 {
		size = 20
	}

	search := textinput.New()
	search.Prompt = "/"
	search.CharLimit = 120

	return Model{
		ctx:         ctx,
		stores:      opts.Stores,
		panes:       newPanes(opts.Stores, size, opts.ExportDir),
		theme:       GetTheme(opts.ThemeName),
		styles:      GetTheme(opts.ThemeName).Styles(),
		searchInput: search,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.fetchCmd(m.active, 0))
}

// Messages

type fetchedMsg struct {
	pane int
	err  error
}

type detailMsg struct {
	pane int
	err  error
}

type actionDoneMsg struct {
	pane   int
	notice string
	err    error
}

type searchDebounceMsg struct {
	pane int
	seq  int
}

// Commands. Every store call blocks, so each runs inside a tea.Cmd goroutine;
// Update itself never touches the network.

func (m Model) fetchCmd(idx, page int) tea.Cmd {
	p := m.panes[idx]
	return func() tea.Msg {
		return fetchedMsg{pane: idx, err: p.fetch(m.ctx, page)}
	}
}

func (m Model) searchCmd(idx int, q string) tea.Cmd {
	p := m.panes[idx]
	return func() tea.Msg {
		return fetchedMsg{pane: idx, err: p.search(m.ctx, q)}
	}
}

func (m Model) detailCmd(idx int, id string) tea.Cmd {
	p := m.panes[idx]
	return func() tea.Msg {
		return detailMsg{pane: idx, err: p.openDetail(m.ctx, id)}
	}
}

func (m Model) actionCmd(idx int, act action, id, input string) tea.Cmd {
	return func() tea.Msg {
		notice, err := act.run(m.ctx, id, input)
		return actionDoneMsg{pane: idx, notice: notice, err: err}
	}
}

func (m Model) debounceCmd(idx, seq int) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{pane: idx, seq: seq}
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailView = viewport.New(msg.Width/2, msg.Height-4)
			m.ready = true
		} else {
			m.detailView.Width = msg.Width / 2
			m.detailView.Height = msg.Height - 4
		}
		return m, nil

	case fetchedMsg:
		if msg.pane == m.active {
			m.clampSelection()
		}
		return m, nil

	case detailMsg:
		if msg.pane == m.active && msg.err == nil {
			m.detailOpen = true
			m.detailView.SetContent(m.panes[m.active].detailView(m.styles))
			m.detailView.GotoTop()
		}
		return m, nil

	case actionDoneMsg:
		if m.modal != nil {
			m.modal.busy = false
			if msg.err != nil {
				// Keep the dialog open with the failure reason; the store
				// already recorded it, but the modal shows it in place.
				m.modal.err = m.panes[msg.pane].status().Err
				if m.modal.err == "" {
					m.modal.err = msg.err.Error()
				}
				return m, nil
			}
			m.modal = nil
		}
		if msg.err == nil {
			m.notice = msg.notice
			if m.detailOpen {
				m.detailView.SetContent(m.panes[m.active].detailView(m.styles))
			}
			m.clampSelection()
		}
		return m, nil

	case searchDebounceMsg:
		if msg.pane == m.active && msg.seq == m.searchSeq && m.searchMode {
			m.selectedRow = 0
			return m, m.searchCmd(m.active, m.searchInput.Value())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		return m.handleModalKey(msg)
	}

	if m.searchMode {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		if m.detailOpen {
			m.detailView.SetContent(m.panes[m.active].detailView(m.styles))
		}
		return m, nil

	case "tab", "]":
		return m.switchPane((m.active + 1) % len(m.panes))

	case "shift+tab", "[":
		return m.switchPane((m.active + len(m.panes) - 1) % len(m.panes))

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		if idx < len(m.panes) {
			return m.switchPane(idx)
		}
		return m, nil

	case "0":
		if len(m.panes) >= 10 {
			return m.switchPane(9)
		}
		return m, nil

	case "/":
		m.searchMode = true
		m.searchInput.SetValue("")
		m.searchInput.Placeholder = m.panes[m.active].searchHint
		m.searchInput.Focus()
		return m, textinput.Blink

	case "enter":
		rows := m.panes[m.active].rows()
		if m.selectedRow < len(rows) {
			return m, m.detailCmd(m.active, rows[m.selectedRow].id)
		}
		return m, nil

	case "esc":
		if m.detailOpen {
			m.detailOpen = false
			m.panes[m.active].closeDetail()
			return m, nil
		}
		// With nothing else open, esc dismisses the error banner and notice.
		m.notice = ""
		m.panes[m.active].clearError()
		return m, nil

	case "ctrl+r":
		return m, m.fetchCmd(m.active, m.panes[m.active].status().Page)

	case "j", "down":
		if rows := m.panes[m.active].rows(); m.selectedRow < len(rows)-1 {
			m.selectedRow++
		}
		return m, nil

	case "k", "up":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil

	case "g", "home":
		m.selectedRow = 0
		return m, nil

	case "G", "end":
		if rows := m.panes[m.active].rows(); len(rows) > 0 {
			m.selectedRow = len(rows) - 1
		}
		return m, nil

	case "h", "left":
		if st := m.panes[m.active].status(); st.HasPrev {
			m.selectedRow = 0
			return m, m.fetchCmd(m.active, st.Page-1)
		}
		return m, nil

	case "l", "right":
		if st := m.panes[m.active].status(); st.HasNext {
			m.selectedRow = 0
			return m, m.fetchCmd(m.active, st.Page+1)
		}
		return m, nil

	case "pgdown":
		if m.detailOpen {
			m.detailView.HalfViewDown()
		}
		return m, nil

	case "pgup":
		if m.detailOpen {
			m.detailView.HalfViewUp()
		}
		return m, nil
	}

	// Pane actions open the confirm modal.
	for _, act := range m.panes[m.active].actions {
		if msg.String() != act.key {
			continue
		}
		id := ""
		if !act.global {
			rows := m.panes[m.active].rows()
			if m.selectedRow >= len(rows) {
				return m, nil
			}
			id = rows[m.selectedRow].id
		}
		input := textinput.New()
		input.CharLimit = 200
		if act.needsInput {
			input.Placeholder = act.prompt
			input.Focus()
		}
		m.modal = &modalState{act: act, id: id, input: input}
		return m, textinput.Blink
	}

	return m, nil
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal.busy {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.modal = nil
		return m, nil

	case "enter":
		m.modal.busy = true
		m.modal.err = ""
		return m, m.actionCmd(m.active, m.modal.act, m.modal.id, m.modal.input.Value())
	}

	if m.modal.act.needsInput {
		var cmd tea.Cmd
		m.modal.input, cmd = m.modal.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.searchMode = false
		m.searchInput.Blur()
		m.searchSeq++
		m.selectedRow = 0
		// Leaving search clears the filter back to the unconstrained list.
		return m, m.searchCmd(m.active, "")

	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		m.searchSeq++
		m.selectedRow = 0
		return m, m.searchCmd(m.active, m.searchInput.Value())
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.searchSeq++
	return m, tea.Batch(cmd, m.debounceCmd(m.active, m.searchSeq))
}

func (m *Model) switchPane(idx int) (tea.Model, tea.Cmd) {
	if m.detailOpen {
		m.panes[m.active].closeDetail()
		m.detailOpen = false
	}
	m.active = idx
	m.selectedRow = 0
	return *m, m.fetchCmd(idx, m.panes[idx].status().Page)
}

func (m *Model) clampSelection() {
	rows := m.panes[m.active].rows()
	if m.selectedRow >= len(rows) {
		m.selectedRow = len(rows) - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// Run starts the console and blocks until the operator quits.
func Run(opts Options) error {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	return err
}
