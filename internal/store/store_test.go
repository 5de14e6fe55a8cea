package store

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/opsdeck/opsdeck/pkg/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

// listCall records one List invocation on the stub.
type listCall struct {
	page, size int
	filters    model.UserFilter
}

// stubClient is a scriptable ListClient for user pages.
type stubClient struct {
	mu        sync.Mutex
	listFn    func(page, size int, filters model.UserFilter) (model.Page[model.User], error)
	getFn     func(id string) (*model.UserDetail, error)
	listCalls []listCall
	getCalls  []string
}

func (s *stubClient) List(_ context.Context, page, size int, filters model.UserFilter) (model.Page[model.User], error) {
	s.mu.Lock()
	s.listCalls = append(s.listCalls, listCall{page, size, filters})
	fn := s.listFn
	s.mu.Unlock()
	if fn == nil {
		return model.NewPage[model.User](nil, 0, page, size), nil
	}
	return fn(page, size, filters)
}

func (s *stubClient) Get(_ context.Context, id string) (*model.UserDetail, error) {
	s.mu.Lock()
	s.getCalls = append(s.getCalls, id)
	fn := s.getFn
	s.mu.Unlock()
	if fn == nil {
		return nil, model.NewNotFoundError("user", id)
	}
	return fn(id)
}

func (s *stubClient) lastListCall(t *testing.T) listCall {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.listCalls) == 0 {
		t.Fatal("no list calls recorded")
	}
	return s.listCalls[len(s.listCalls)-1]
}

func (s *stubClient) listCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listCalls)
}

func makeUsers(n int) []model.User {
	users := make([]model.User, n)
	for i := range users {
		users[i] = model.User{
			ID:     fmt.Sprintf("u%d", i+1),
			Email:  fmt.Sprintf("user%d@example.com", i+1),
			Status: model.UserActive,
		}
	}
	return users
}

func newTestStore(stub *stubClient) *Store[model.User, model.UserDetail, model.UserFilter] {
	return New[model.User, model.UserDetail, model.UserFilter]("users", stub, testLogger())
}

func TestFetchPopulatesPage(t *testing.T) {
	stub := &stubClient{
		listFn: func(page, size int, _ model.UserFilter) (model.Page[model.User], error) {
			return model.NewPage(makeUsers(20), 57, page, size), nil
		},
	}
	s := newTestStore(stub)

	if err := s.Fetch(context.Background(), 0, 20, model.UserFilter{}); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Items) != 20 {
		t.Errorf("items = %d, want 20", len(snap.Items))
	}
	if snap.Total != 57 {
		t.Errorf("total = %d, want 57", snap.Total)
	}
	if snap.TotalPages() != 3 {
		t.Errorf("total pages = %d, want 3", snap.TotalPages())
	}
	if snap.Page != 0 {
		t.Errorf("page = %d, want 0", snap.Page)
	}
	if snap.Loading {
		t.Error("loading still true after fetch")
	}
	if snap.Err != "" {
		t.Errorf("err = %q, want empty", snap.Err)
	}
}

func TestFetchFailureKeepsPriorItems(t *testing.T) {
	fail := false
	stub := &stubClient{
		listFn: func(page, size int, _ model.UserFilter) (model.Page[model.User], error) {
			if fail {
				return model.Page[model.User]{}, fmt.Errorf("connection refused")
			}
			return model.NewPage(makeUsers(5), 5, page, size), nil
		},
	}
	s := newTestStore(stub)

	if err := s.Fetch(context.Background(), 0, 20, model.UserFilter{}); err != nil {
		t.Fatalf("first fetch: %v", err)
	}

	fail = true
	if err := s.FetchPage(context.Background(), 1); err == nil {
		t.Fatal("expected error from failing fetch")
	}

	snap := s.Snapshot()
	if len(snap.Items) != 5 {
		t.Errorf("items = %d after failed fetch, want prior 5", len(snap.Items))
	}
	if snap.Total != 5 {
		t.Errorf("total = %d after failed fetch, want prior 5", snap.Total)
	}
	if snap.Page != 0 {
		t.Errorf("page = %d after failed fetch, want prior 0", snap.Page)
	}
	if snap.Loading {
		t.Error("loading still true after failed fetch")
	}
	if snap.Err == "" {
		t.Error("err empty after failed fetch")
	}

	// A subsequent successful fetch clears the error.
	fail = false
	if err := s.Refetch(context.Background()); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if snap := s.Snapshot(); snap.Err != "" {
		t.Errorf("err = %q after successful fetch, want empty", snap.Err)
	}
}

func TestFilterRoundTrip(t *testing.T) {
	stub := &stubClient{}
	s := newTestStore(stub)

	want := model.UserFilter{Email: "alice", Status: model.UserSuspended}
	s.SetFilters(want)
	if err := s.Refetch(context.Background()); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if got := stub.lastListCall(t).filters; got != want {
		t.Errorf("filters sent = %+v, want %+v", got, want)
	}

	// Paging preserves the active filter set.
	if err := s.FetchPage(context.Background(), 2); err != nil {
		t.Fatalf("fetch page: %v", err)
	}
	if got := stub.lastListCall(t).filters; got != want {
		t.Errorf("filters after paging = %+v, want %+v", got, want)
	}

	// Reset drops filters; the next fetch carries the zero set.
	s.Reset()
	if err := s.Refetch(context.Background()); err != nil {
		t.Fatalf("refetch after reset: %v", err)
	}
	if got := stub.lastListCall(t).filters; got != (model.UserFilter{}) {
		t.Errorf("filters after reset = %+v, want zero", got)
	}
}

func TestMutateRefetchesCurrentPage(t *testing.T) {
	stub := &stubClient{
		listFn: func(page, size int, _ model.UserFilter) (model.Page[model.User], error) {
			return model.NewPage(makeUsers(10), 35, page, size), nil
		},
	}
	s := newTestStore(stub)

	filters := model.UserFilter{Plan: "pro"}
	if err := s.Fetch(context.Background(), 1, 10, filters); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	before := stub.listCallCount()

	err := s.Do(context.Background(), "u1", "Failed to suspend user", func(context.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if got := stub.listCallCount(); got != before+1 {
		t.Errorf("list calls after mutation = %d, want %d (exactly one re-fetch)", got, before+1)
	}
	last := stub.lastListCall(t)
	if last.page != 1 || last.size != 10 || last.filters != filters {
		t.Errorf("re-fetch used (page=%d size=%d filters=%+v), want current (1, 10, %+v)",
			last.page, last.size, last.filters, filters)
	}
}

func TestMutateSuccessReflectsBackendState(t *testing.T) {
	suspended := false
	stub := &stubClient{
		listFn: func(page, size int, _ model.UserFilter) (model.Page[model.User], error) {
			users := makeUsers(3)
			if suspended {
				users[0].Status = model.UserSuspended
			}
			return model.NewPage(users, 3, page, size), nil
		},
	}
	s := newTestStore(stub)

	if err := s.Fetch(context.Background(), 0, 20, model.UserFilter{}); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	err := s.Do(context.Background(), "u1", "Failed to suspend user", func(context.Context) error {
		suspended = true
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	snap := s.Snapshot()
	if snap.Items[0].Status != model.UserSuspended {
		t.Errorf("items[0].Status = %s after mutation, want SUSPENDED", snap.Items[0].Status)
	}
	if snap.Err != "" {
		t.Errorf("err = %q after successful mutation, want empty", snap.Err)
	}
}

func TestMutateFailureSurfacesServerMessage(t *testing.T) {
	stub := &stubClient{
		listFn: func(page, size int, _ model.UserFilter) (model.Page[model.User], error) {
			return model.NewPage(makeUsers(3), 3, page, size), nil
		},
	}
	s := newTestStore(stub)

	if err := s.Fetch(context.Background(), 0, 20, model.UserFilter{}); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	before := stub.listCallCount()

	err := s.Do(context.Background(), "u1", "Failed to suspend user", func(context.Context) error {
		return &model.APIError{Code: model.ErrConflict, Message: "locked"}
	})
	if err == nil {
		t.Fatal("Do returned nil for failing action")
	}

	snap := s.Snapshot()
	if snap.Err != "locked" {
		t.Errorf("err = %q, want server message %q", snap.Err, "locked")
	}
	if len(snap.Items) != 3 {
		t.Errorf("items = %d after failed mutation, want unchanged 3", len(snap.Items))
	}
	if got := stub.listCallCount(); got != before {
		t.Errorf("list calls after failed mutation = %d, want %d (no re-fetch)", got, before)
	}
}

func TestMutateFailureFallbackMessage(t *testing.T) {
	s := newTestStore(&stubClient{})
	err := s.Do(context.Background(), "u1", "Failed to suspend user", func(context.Context) error {
		return fmt.Errorf("dial tcp: connection refused")
	})
	if err == nil {
		t.Fatal("Do returned nil for failing action")
	}
	if got := s.Snapshot().Err; got != "Failed to suspend user" {
		t.Errorf("err = %q, want fallback %q", got, "Failed to suspend user")
	}
}

func TestMutateRefreshesOpenDetail(t *testing.T) {
	stub := &stubClient{
		getFn: func(id string) (*model.UserDetail, error) {
			return &model.UserDetail{User: model.User{ID: id}}, nil
		},
	}
	s := newTestStore(stub)

	if err := s.FetchDetail(context.Background(), "u1"); err != nil {
		t.Fatalf("fetch detail: %v", err)
	}

	if err := s.Do(context.Background(), "u1", "fallback", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Do: %v", err)
	}

	stub.mu.Lock()
	gets := len(stub.getCalls)
	stub.mu.Unlock()
	if gets != 2 {
		t.Errorf("detail fetches = %d, want 2 (initial + post-mutation refresh)", gets)
	}
}

func TestMutateOtherIDLeavesDetailAlone(t *testing.T) {
	stub := &stubClient{
		getFn: func(id string) (*model.UserDetail, error) {
			return &model.UserDetail{User: model.User{ID: id}}, nil
		},
	}
	s := newTestStore(stub)

	if err := s.FetchDetail(context.Background(), "u1"); err != nil {
		t.Fatalf("fetch detail: %v", err)
	}

	if err := s.Do(context.Background(), "u2", "fallback", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Do: %v", err)
	}

	stub.mu.Lock()
	gets := len(stub.getCalls)
	stub.mu.Unlock()
	if gets != 1 {
		t.Errorf("detail fetches = %d, want 1 (mutating another id must not refresh the open detail)", gets)
	}
	if snap := s.Snapshot(); snap.Selected == nil || snap.Selected.ID != "u1" {
		t.Errorf("selected = %+v, want untouched u1", snap.Selected)
	}
}

func TestDetailNotFound(t *testing.T) {
	stub := &stubClient{
		getFn: func(id string) (*model.UserDetail, error) {
			return nil, model.NewNotFoundError("user", id)
		},
	}
	s := newTestStore(stub)

	if err := s.FetchDetail(context.Background(), "missing-id"); err == nil {
		t.Fatal("expected error for missing id")
	}

	snap := s.Snapshot()
	if snap.Selected != nil {
		t.Error("selected set after not-found fetch")
	}
	if snap.LoadingDetail {
		t.Error("loadingDetail still true after not-found fetch")
	}
	if snap.Err == "" {
		t.Error("err empty after not-found fetch")
	}
}

func TestDetailDoesNotTouchListState(t *testing.T) {
	stub := &stubClient{
		listFn: func(page, size int, _ model.UserFilter) (model.Page[model.User], error) {
			return model.NewPage(makeUsers(4), 4, page, size), nil
		},
		getFn: func(id string) (*model.UserDetail, error) {
			return &model.UserDetail{User: model.User{ID: id}}, nil
		},
	}
	s := newTestStore(stub)

	if err := s.Fetch(context.Background(), 0, 20, model.UserFilter{}); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if err := s.FetchDetail(context.Background(), "u2"); err != nil {
		t.Fatalf("fetch detail: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Items) != 4 || snap.Total != 4 {
		t.Error("list state changed by detail fetch")
	}
	if snap.Selected == nil || snap.Selected.ID != "u2" {
		t.Errorf("selected = %+v, want u2", snap.Selected)
	}
}

func TestClearsAreIdempotent(t *testing.T) {
	stub := &stubClient{
		getFn: func(id string) (*model.UserDetail, error) {
			return &model.UserDetail{User: model.User{ID: id}}, nil
		},
	}
	s := newTestStore(stub)
	if err := s.FetchDetail(context.Background(), "u1"); err != nil {
		t.Fatalf("fetch detail: %v", err)
	}

	s.ClearSelected()
	first := s.Snapshot()
	s.ClearSelected()
	second := s.Snapshot()
	if first.Selected != nil || second.Selected != nil || first.SelectedID != second.SelectedID {
		t.Error("ClearSelected not idempotent")
	}

	s.setError("boom")
	s.ClearError()
	if s.Snapshot().Err != "" {
		t.Error("ClearError left an error")
	}
	s.ClearError()
	if s.Snapshot().Err != "" {
		t.Error("second ClearError changed state")
	}
}

func TestResetReturnsInitialState(t *testing.T) {
	stub := &stubClient{
		listFn: func(page, size int, _ model.UserFilter) (model.Page[model.User], error) {
			return model.NewPage(makeUsers(7), 7, page, size), nil
		},
	}
	s := newTestStore(stub)
	if err := s.Fetch(context.Background(), 0, 10, model.UserFilter{Plan: "pro"}); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	s.Reset()
	snap := s.Snapshot()
	if len(snap.Items) != 0 || snap.Total != 0 || snap.Page != 0 {
		t.Errorf("snapshot after reset = %+v, want empty", snap)
	}
	if snap.Err != "" || snap.Loading || snap.LoadingDetail || snap.Selected != nil {
		t.Error("flags not cleared by reset")
	}
}

func TestStaleListResponseDiscarded(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	stub := &stubClient{}
	stub.listFn = func(page, size int, _ model.UserFilter) (model.Page[model.User], error) {
		if page == 0 {
			close(entered)
			<-release
			return model.NewPage(makeUsers(20), 100, page, size), nil
		}
		return model.NewPage(makeUsers(10), 100, page, size), nil
	}
	s := newTestStore(stub)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Fetch(context.Background(), 0, 20, model.UserFilter{})
	}()
	<-entered

	// The second fetch completes while the first is still in flight.
	if err := s.Fetch(context.Background(), 1, 10, model.UserFilter{}); err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	close(release)
	<-done

	snap := s.Snapshot()
	if snap.Page != 1 {
		t.Errorf("page = %d, want 1 (older response must not overwrite newer)", snap.Page)
	}
	if len(snap.Items) != 10 {
		t.Errorf("items = %d, want 10 from the newer fetch", len(snap.Items))
	}
	if snap.Loading {
		t.Error("loading still true after both fetches settled")
	}
}
