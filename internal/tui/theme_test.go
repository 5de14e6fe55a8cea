package tui

import "testing"

func TestGetThemeFallsBackToSlate(t *testing.T) {
	if got := GetTheme("nope").Name; got != "slate" {
		t.Fatalf("GetTheme(nope).Name = %q, want slate", got)
	}
	if got := GetTheme("dracula").Name; got != "dracula" {
		t.Fatalf("GetTheme(dracula).Name = %q", got)
	}
}

func TestNextThemeCycles(t *testing.T) {
	if got := NextTheme("slate"); got != "dracula" {
		t.Fatalf("NextTheme(slate) = %q, want dracula", got)
	}
	if got := NextTheme("dracula"); got != "slate" {
		t.Fatalf("NextTheme(dracula) = %q, want slate", got)
	}
	if got := NextTheme("unknown"); got != "slate" {
		t.Fatalf("NextTheme(unknown) = %q, want slate", got)
	}
}
