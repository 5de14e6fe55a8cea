package store

import "testing"

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{57, 20, 3},
		{100, 10, 10},
		{5, 0, 0},
		{-3, 20, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		page, size, total     int
		wantFirst, wantLast int
	}{
		{0, 20, 57, 1, 20},
		{1, 20, 57, 21, 40},
		{2, 20, 57, 41, 57},
		{0, 20, 0, 0, 0},
		{0, 10, 3, 1, 3},
		{5, 20, 57, 0, 0}, // past the end
		{-1, 20, 57, 0, 0},
	}
	for _, tt := range tests {
		first, last := VisibleRange(tt.page, tt.size, tt.total)
		if first != tt.wantFirst || last != tt.wantLast {
			t.Errorf("VisibleRange(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.page, tt.size, tt.total, first, last, tt.wantFirst, tt.wantLast)
		}
	}
}

func TestSnapshotPagingFlags(t *testing.T) {
	snap := Snapshot[int, int]{Total: 57, Page: 0, Size: 20}
	if snap.HasPrev() {
		t.Error("HasPrev on first page = true, want false")
	}
	if !snap.HasNext() {
		t.Error("HasNext with more pages = false, want true")
	}

	snap.Page = 2
	if !snap.HasPrev() {
		t.Error("HasPrev on last page = false, want true")
	}
	if snap.HasNext() {
		t.Error("HasNext on last page = true, want false")
	}

	if got := snap.TotalPages(); got != 3 {
		t.Errorf("TotalPages = %d, want 3", got)
	}
}
