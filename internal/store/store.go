// Package store implements the resource store shared by every admin console
// view: one authoritative copy of a resource's current page, detail slot, and
// loading/error flags, kept consistent with the backend by re-fetching after
// every mutation.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/opsdeck/opsdeck/pkg/model"
)

const defaultPageSize = 20

// ListClient is the transport surface a store needs: one page-oriented list
// call and one detail call. Per-resource API namespaces implement it.
type ListClient[T, D, F any] interface {
	List(ctx context.Context, page, size int, filters F) (model.Page[T], error)
	Get(ctx context.Context, id string) (*D, error)
}

// Store holds one resource type's list page and detail slot. T is the list-row
// shape, D the detail shape, F the filter shape. The zero value of F means "no
// constraints". Stores are safe for concurrent use; network calls run outside
// the lock, and each slice (list, detail) carries a sequence number so a slow
// response can never overwrite the result of a newer request.
type Store[T, D, F any] struct {
	client   ListClient[T, D, F]
	resource string
	logger   *slog.Logger

	mu            sync.Mutex
	items         []T
	total         int
	page          int
	size          int
	filters       F
	selected      *D
	selectedID    string
	loading       bool
	loadingDetail bool
	lastErr       string
	listSeq       uint64
	detailSeq     uint64
}

// New creates an empty store for the named resource.
func New[T, D, F any](resource string, client ListClient[T, D, F], logger *slog.Logger) *Store[T, D, F] {
	return &Store[T, D, F]{
		client:   client,
		resource: resource,
		logger:   logger.With("store", resource),
		size:     defaultPageSize,
	}
}

// Snapshot is an immutable view of store state at a point in time. Items is a
// defensive copy; renderers may hold it across frames.
type Snapshot[T, D any] struct {
	Items         []T
	Total         int
	Page          int
	Size          int
	Loading       bool
	LoadingDetail bool
	Err           string
	Selected      *D
	SelectedID    string
}

// TotalPages derives the page count for this snapshot.
func (s Snapshot[T, D]) TotalPages() int { return TotalPages(s.Total, s.Size) }

// VisibleRange derives the 1-based ordinals shown by this snapshot.
func (s Snapshot[T, D]) VisibleRange() (int, int) { return VisibleRange(s.Page, s.Size, s.Total) }

// HasPrev reports whether a previous page exists.
func (s Snapshot[T, D]) HasPrev() bool { return s.Page > 0 }

// HasNext reports whether a next page exists.
func (s Snapshot[T, D]) HasNext() bool { return s.Page < TotalPages(s.Total, s.Size)-1 }

// Snapshot returns the current state.
func (s *Store[T, D, F]) Snapshot() Snapshot[T, D] {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]T, len(s.items))
	copy(items, s.items)
	return Snapshot[T, D]{
		Items:         items,
		Total:         s.total,
		Page:          s.page,
		Size:          s.size,
		Loading:       s.loading,
		LoadingDetail: s.loadingDetail,
		Err:           s.lastErr,
		Selected:      s.selected,
		SelectedID:    s.selectedID,
	}
}

// Filters returns the active filter set.
func (s *Store[T, D, F]) Filters() F {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SetFilters stages a new filter set without fetching, so a view can edit
// filters before applying them with Refetch.
func (s *Store[T, D, F]) SetFilters(filters F) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = filters
}

// Fetch loads the given page with the given size and filters, replacing the
// page state wholesale on success. On failure the previously loaded items stay
// visible and the store's error is set.
func (s *Store[T, D, F]) Fetch(ctx context.Context, page, size int, filters F) error {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}

	s.mu.Lock()
	s.listSeq++
	seq := s.listSeq
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	pg, err := s.client.List(ctx, page, size, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.listSeq {
		// A newer fetch was issued while this one was in flight.
		s.logger.Debug("stale list response discarded", "seq", seq)
		return nil
	}
	s.loading = false
	if err != nil {
		s.lastErr = errorMessage(err, "Failed to fetch "+s.resource)
		s.logger.Warn("list fetch failed", "error", err)
		return err
	}
	s.items = pg.Content
	s.total = pg.TotalElements
	s.page = page
	s.size = size
	s.filters = filters
	return nil
}

// FetchPage loads the given page keeping the current size and filters, so
// paging preserves the active filter set.
func (s *Store[T, D, F]) FetchPage(ctx context.Context, page int) error {
	s.mu.Lock()
	size := s.size
	filters := s.filters
	s.mu.Unlock()
	return s.Fetch(ctx, page, size, filters)
}

// Refetch reloads the current page with the current size and filters.
func (s *Store[T, D, F]) Refetch(ctx context.Context) error {
	s.mu.Lock()
	page := s.page
	size := s.size
	filters := s.filters
	s.mu.Unlock()
	return s.Fetch(ctx, page, size, filters)
}

// FetchDetail loads the detail slot for id. List state is untouched. A failed
// fetch (including not-found) leaves the slot empty with the error set.
func (s *Store[T, D, F]) FetchDetail(ctx context.Context, id string) error {
	s.mu.Lock()
	s.detailSeq++
	seq := s.detailSeq
	s.loadingDetail = true
	s.lastErr = ""
	s.mu.Unlock()

	d, err := s.client.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.detailSeq {
		s.logger.Debug("stale detail response discarded", "seq", seq)
		return nil
	}
	s.loadingDetail = false
	if err != nil {
		s.lastErr = errorMessage(err, "Failed to fetch "+s.resource+" details")
		s.logger.Warn("detail fetch failed", "id", id, "error", err)
		return err
	}
	s.selected = d
	s.selectedID = id
	return nil
}

// Do runs a mutating action against id and converges with the backend: on
// success it re-fetches the current page and, when the detail slot holds that
// same id, the detail too. id may be empty for actions that create rather
// than mutate. On failure the error message is recorded (preferring a
// server-supplied reason over fallback) and the error is returned so the
// caller can keep its confirmation UI open. List and detail state are never
// patched locally.
func (s *Store[T, D, F]) Do(ctx context.Context, id, fallback string, action func(context.Context) error) error {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()

	if err := action(ctx); err != nil {
		s.mu.Lock()
		s.lastErr = errorMessage(err, fallback)
		s.mu.Unlock()
		s.logger.Warn("action failed", "error", err)
		return err
	}

	// Refresh failures surface through the error field but do not fail the
	// action itself; the mutation has already been applied server-side.
	_ = s.Refetch(ctx)

	s.mu.Lock()
	open := id != "" && s.selectedID == id
	s.mu.Unlock()
	if open {
		_ = s.FetchDetail(ctx, id)
	}
	return nil
}

// ClearSelected drops the detail slot. Idempotent.
func (s *Store[T, D, F]) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
	s.selectedID = ""
}

// ClearError drops the error string. Idempotent.
func (s *Store[T, D, F]) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// Reset returns the store to its initial empty state and invalidates any
// in-flight fetches.
func (s *Store[T, D, F]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero F
	s.items = nil
	s.total = 0
	s.page = 0
	s.size = defaultPageSize
	s.filters = zero
	s.selected = nil
	s.selectedID = ""
	s.loading = false
	s.loadingDetail = false
	s.lastErr = ""
	s.listSeq++
	s.detailSeq++
}

// errorMessage prefers a server-supplied reason and falls back to the
// per-action default for transport-level failures.
func errorMessage(err error, fallback string) string {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
