package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/api"
	"github.com/opsdeck/opsdeck/internal/store"
)

func testModel(t *testing.T) Model {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := api.NewClient("http://127.0.0.1:1", "", logger)
	m := New(Options{
		Context:   context.Background(),
		Stores:    store.NewSet(client, logger),
		PageSize:  10,
		ThemeName: "slate",
		ExportDir: t.TempDir(),
	})
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return sized.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabSwitchingWraps(t *testing.T) {
	m := testModel(t)
	if m.active != 0 {
		t.Fatalf("active = %d, want 0", m.active)
	}

	next, _ := m.Update(key("tab"))
	m = next.(Model)
	if m.active != 1 {
		t.Fatalf("after tab active = %d, want 1", m.active)
	}

	prev, _ := m.Update(key("shift+tab"))
	m = prev.(Model)
	if m.active != 0 {
		t.Fatalf("after shift+tab active = %d, want 0", m.active)
	}

	wrapped, _ := m.Update(key("["))
	m = wrapped.(Model)
	if m.active != len(m.panes)-1 {
		t.Fatalf("after [ from first tab active = %d, want %d", m.active, len(m.panes)-1)
	}
}

func TestNumberKeysJumpToPane(t *testing.T) {
	m := testModel(t)

	jumped, _ := m.Update(key("5"))
	m = jumped.(Model)
	if m.active != 4 {
		t.Fatalf("after 5 active = %d, want 4", m.active)
	}

	last, _ := m.Update(key("0"))
	m = last.(Model)
	if m.active != 9 {
		t.Fatalf("after 0 active = %d, want 9", m.active)
	}
}

func TestSearchDebounceDiscardsStaleTicks(t *testing.T) {
	m := testModel(t)

	started, _ := m.Update(key("/"))
	m = started.(Model)
	if !m.searchMode {
		t.Fatal("expected search mode after /")
	}

	typed, _ := m.Update(key("a"))
	m = typed.(Model)
	stale := m.searchSeq

	typed, _ = m.Update(key("b"))
	m = typed.(Model)

	if _, cmd := m.Update(searchDebounceMsg{pane: m.active, seq: stale}); cmd != nil {
		t.Fatal("stale debounce tick should not trigger a fetch")
	}
	if _, cmd := m.Update(searchDebounceMsg{pane: m.active, seq: m.searchSeq}); cmd == nil {
		t.Fatal("current debounce tick should trigger a fetch")
	}
}

func TestModalOpensForActionAndClosesOnEsc(t *testing.T) {
	m := testModel(t)

	// Invite creation is a global action, so no row selection is needed.
	jumped, _ := m.Update(key("0"))
	m = jumped.(Model)

	opened, _ := m.Update(key("c"))
	m = opened.(Model)
	if m.modal == nil {
		t.Fatal("expected the confirm modal to open")
	}
	if m.modal.act.label != "create" {
		t.Fatalf("modal action = %q, want create", m.modal.act.label)
	}

	closed, _ := m.Update(key("esc"))
	m = closed.(Model)
	if m.modal != nil {
		t.Fatal("expected esc to close the modal")
	}
}

func TestModalStaysOpenOnFailure(t *testing.T) {
	m := testModel(t)
	jumped, _ := m.Update(key("0"))
	m = jumped.(Model)
	opened, _ := m.Update(key("c"))
	m = opened.(Model)

	failed, _ := m.Update(actionDoneMsg{pane: m.active, err: store.ErrMaxUsesPositive})
	m = failed.(Model)
	if m.modal == nil {
		t.Fatal("modal should stay open after a failed action")
	}
	if m.modal.err == "" {
		t.Fatal("modal should show the failure reason")
	}

	done, _ := m.Update(actionDoneMsg{pane: m.active, notice: "Created invite code ABC123"})
	m = done.(Model)
	if m.modal != nil {
		t.Fatal("modal should close after a successful action")
	}
	if m.notice != "Created invite code ABC123" {
		t.Fatalf("notice = %q", m.notice)
	}
}

func TestParseInviteSpec(t *testing.T) {
	maxUses, days, err := parseInviteSpec("5,30")
	if err != nil || maxUses != 5 || days != 30 {
		t.Fatalf("parseInviteSpec(5,30) = %d, %d, %v", maxUses, days, err)
	}

	maxUses, days, err = parseInviteSpec("3")
	if err != nil || maxUses != 3 || days != 30 {
		t.Fatalf("parseInviteSpec(3) = %d, %d, %v", maxUses, days, err)
	}

	if _, _, err := parseInviteSpec("lots"); err == nil {
		t.Fatal("expected an error for a non-numeric max uses")
	}
}
