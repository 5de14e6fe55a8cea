package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	if m.modal != nil {
		return m.overlayModal(b.String())
	}
	return b.String()
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, len(m.panes)+1)
	parts = append(parts, m.styles.Accent.Render(" opsdeck "))
	for i, p := range m.panes {
		label := fmt.Sprintf("%d:%s", (i+1)%10, p.title)
		if i == m.active {
			parts = append(parts, m.styles.ActiveTab.Render(label))
		} else {
			parts = append(parts, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.NewStyle().Width(m.width).Render(strings.Join(parts, ""))
}

func (m Model) renderContent() string {
	contentHeight := m.height - 4
	if contentHeight < 3 {
		contentHeight = 3
	}

	tableWidth := m.width - 4
	if m.detailOpen {
		tableWidth = m.width/2 - 4
	}

	table := m.renderTable(tableWidth, contentHeight)
	left := m.paneStyle(!m.detailOpen).Width(tableWidth).Height(contentHeight).Render(table)

	if !m.detailOpen {
		return left
	}

	m.detailView.Width = m.width - tableWidth - 8
	m.detailView.Height = contentHeight
	right := m.paneStyle(true).Width(m.detailView.Width).Height(contentHeight).Render(m.detailView.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) paneStyle(focused bool) lipgloss.Style {
	if focused {
		return m.styles.FocusedPane
	}
	return m.styles.Pane
}

func (m Model) renderTable(width, height int) string {
	p := m.panes[m.active]
	rows := p.rows()

	widths := make([]int, len(p.columns))
	for i, c := range p.columns {
		widths[i] = len(c)
	}
	for _, r := range rows {
		for i, c := range r.cells {
			if i < len(widths) && len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}

	var b strings.Builder
	b.WriteString(m.styles.TableHeader.Render(renderCells(p.columns, widths, width)))
	b.WriteString("\n")

	for i, r := range rows {
		if i >= height-2 {
			break
		}
		line := renderCells(r.cells, widths, width)
		if i == m.selectedRow {
			b.WriteString(m.styles.Selected.Render(line))
		} else {
			b.WriteString(m.styles.Text.Render(line))
		}
		b.WriteString("\n")
	}

	if len(rows) == 0 {
		st := p.status()
		if st.Loading {
			b.WriteString(m.styles.MutedText.Render("Loading..."))
		} else {
			b.WriteString(m.styles.MutedText.Render("No results."))
		}
	}
	return b.String()
}

func renderCells(cells []string, widths []int, max int) string {
	var b strings.Builder
	for i, c := range cells {
		w := widths[i]
		if len(c) > w {
			c = truncate(c, w)
		}
		b.WriteString(fmt.Sprintf("%-*s", w, c))
		if i < len(cells)-1 {
			b.WriteString("  ")
		}
		if b.Len() >= max && max > 0 {
			break
		}
	}
	return truncate(b.String(), max)
}

func (m Model) renderFooter() string {
	if m.searchMode {
		return m.styles.Footer.Width(m.width).Render(m.searchInput.View())
	}

	st := m.panes[m.active].status()
	var parts []string

	switch {
	case st.Loading:
		parts = append(parts, m.styles.Warning.Render("loading"))
	case st.Total == 0:
		parts = append(parts, "0 results")
	default:
		parts = append(parts, fmt.Sprintf("%d-%d of %d  page %d/%d",
			st.From, st.To, st.Total, st.Page+1, st.TotalPages))
	}

	if st.Err != "" {
		parts = append(parts, m.styles.Danger.Render(st.Err))
	}
	if m.notice != "" {
		parts = append(parts, m.styles.Success.Render(m.notice))
	}

	hints := []string{"/ search", "enter detail", "h/l page", "? help", "q quit"}
	for _, act := range m.panes[m.active].actions {
		hints = append(hints, act.key+" "+act.label)
	}
	parts = append(parts, m.styles.FaintText.Render(strings.Join(hints, "  ")))

	return m.styles.Footer.Width(m.width).Render(strings.Join(parts, "  |  "))
}

func (m Model) overlayModal(base string) string {
	mod := m.modal
	var b strings.Builder

	title := mod.act.label
	if mod.id != "" {
		title += " " + mod.id
	}
	b.WriteString(m.styles.Accent.Render(title))
	b.WriteString("\n\n")

	if mod.act.needsInput {
		b.WriteString(m.styles.MutedText.Render(mod.act.prompt))
		b.WriteString("\n")
		b.WriteString(mod.input.View())
		b.WriteString("\n")
	}

	if mod.err != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Danger.Render(mod.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if mod.busy {
		b.WriteString(m.styles.Warning.Render("working..."))
	} else {
		b.WriteString(m.styles.FaintText.Render("enter confirm  esc cancel"))
	}

	dialog := m.styles.Modal.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.Accent.Render("opsdeck console"))
	b.WriteString("\n\n")

	rows := [][2]string{
		{"tab / ] / [", "next / previous resource"},
		{"1-9, 0", "jump to resource"},
		{"j/k, up/down", "move selection"},
		{"g / G", "first / last row"},
		{"h/l, left/right", "previous / next page"},
		{"enter", "open detail"},
		{"esc", "close detail, cancel dialog, dismiss error"},
		{"/", "search (applies as you type)"},
		{"ctrl+r", "reload current page"},
		{"pgup / pgdn", "scroll detail"},
		{"T", "cycle theme"},
		{"q, ctrl+c", "quit"},
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			m.styles.Text.Render(fmt.Sprintf("%-18s", r[0])),
			m.styles.MutedText.Render(r[1])))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("Per-resource actions are listed in the footer."))
	b.WriteString("\n\n")
	b.WriteString(m.styles.FaintText.Render("press any key to close"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
