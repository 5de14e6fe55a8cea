package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/opsdeck/opsdeck/internal/sandbox/db"
	"github.com/opsdeck/opsdeck/pkg/model"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	st, err := db.Open(":memory:", logger)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := st.Seed(ctx, db.DefaultFixture()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return New(st, logger)
}

func doReq(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decodePage[T any](t *testing.T, w *httptest.ResponseRecorder) model.Page[T] {
	t.Helper()
	var pg model.Page[T]
	if err := json.Unmarshal(w.Body.Bytes(), &pg); err != nil {
		t.Fatalf("decode page: %v, body=%s", err, w.Body.String())
	}
	return pg
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *model.APIError {
	t.Helper()
	var env struct {
		Error *model.APIError `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v, body=%s", err, w.Body.String())
	}
	if env.Error == nil {
		t.Fatalf("no error in body %s", w.Body.String())
	}
	return env.Error
}

func TestListUsersEnvelope(t *testing.T) {
	srv := testServer(t)
	w := doReq(t, srv, "GET", "/api/v1/users?page=0&size=20", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("X-Request-ID"); got == "" {
		t.Error("missing X-Request-ID header")
	}

	pg := decodePage[model.User](t, w)
	if pg.TotalElements != 45 {
		t.Errorf("totalElements = %d, want 45", pg.TotalElements)
	}
	if pg.TotalPages != 3 {
		t.Errorf("totalPages = %d, want 3", pg.TotalPages)
	}
	if len(pg.Content) != 20 {
		t.Errorf("content length = %d, want 20", len(pg.Content))
	}
	if !pg.First || pg.Last {
		t.Errorf("first=%v last=%v on page 0 of 3", pg.First, pg.Last)
	}
}

func getOK(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := doReq(t, srv, "GET", path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s: status=%d, body=%s", path, w.Code, w.Body.String())
	}
	return w
}

func TestListUsersLastPage(t *testing.T) {
	srv := testServer(t)
	pg := decodePage[model.User](t, getOK(t, srv, "/api/v1/users?page=2&size=20"))
	if len(pg.Content) != 5 {
		t.Errorf("content length = %d, want 5", len(pg.Content))
	}
	if pg.First || !pg.Last {
		t.Errorf("first=%v last=%v on page 2 of 3", pg.First, pg.Last)
	}
}

func TestFilteredListNarrowsAndRecounts(t *testing.T) {
	srv := testServer(t)
	pg := decodePage[model.User](t, getOK(t, srv, "/api/v1/users?status=SUSPENDED"))
	if pg.TotalElements == 0 || pg.TotalElements >= 45 {
		t.Fatalf("totalElements = %d, want strict subset", pg.TotalElements)
	}
	for _, u := range pg.Content {
		if u.Status != model.UserSuspended {
			t.Errorf("user %s status = %s", u.ID, u.Status)
		}
	}
}

func TestGetUserDetail(t *testing.T) {
	srv := testServer(t)
	w := getOK(t, srv, "/api/v1/users/usr_001")
	var d model.UserDetail
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if d.ID != "usr_001" {
		t.Errorf("id = %q", d.ID)
	}
	if len(d.Servers) == 0 || len(d.Invoices) == 0 {
		t.Errorf("detail missing nested collections: servers=%d invoices=%d", len(d.Servers), len(d.Invoices))
	}
}

func TestGetUserNotFound(t *testing.T) {
	srv := testServer(t)
	w := doReq(t, srv, "GET", "/api/v1/users/usr_999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	apiErr := decodeError(t, w)
	if apiErr.Code != model.ErrNotFound {
		t.Errorf("code = %s, want NOT_FOUND", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "usr_999") {
		t.Errorf("message %q does not name the id", apiErr.Message)
	}
}

func TestSuspendRequiresReason(t *testing.T) {
	srv := testServer(t)
	w := doReq(t, srv, "POST", "/api/v1/users/usr_001/suspend", map[string]string{"reason": ""})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	apiErr := decodeError(t, w)
	if apiErr.Code != model.ErrValidation {
		t.Errorf("code = %s, want VALIDATION_ERROR", apiErr.Code)
	}
}

func TestSuspendThenListReflectsChange(t *testing.T) {
	srv := testServer(t)
	w := doReq(t, srv, "POST", "/api/v1/users/usr_003/suspend", map[string]string{"reason": "tos violation"})
	if w.Code != http.StatusOK {
		t.Fatalf("suspend status = %d, body=%s", w.Code, w.Body.String())
	}

	pg := decodePage[model.User](t, getOK(t, srv, "/api/v1/users?email=user03"))
	if len(pg.Content) != 1 || pg.Content[0].Status != model.UserSuspended {
		t.Fatalf("list does not reflect suspension: %+v", pg.Content)
	}

	// The mutation also lands in the audit trail.
	logs := decodePage[model.AuditLog](t, getOK(t, srv, "/api/v1/audit?action=user.suspend&actor=admin@opsdeck.example"))
	if logs.TotalElements == 0 {
		t.Error("suspend not recorded in audit trail")
	}
}

func TestCancelSubscriptionConflictOnRepeat(t *testing.T) {
	srv := testServer(t)
	first := doReq(t, srv, "POST", "/api/v1/subscriptions/sub_001/cancel", map[string]string{"reason": "downgrade"})
	if first.Code != http.StatusOK {
		t.Fatalf("first cancel status = %d", first.Code)
	}
	second := doReq(t, srv, "POST", "/api/v1/subscriptions/sub_001/cancel", map[string]string{"reason": "again"})
	if second.Code != http.StatusConflict {
		t.Fatalf("second cancel status = %d, want 409", second.Code)
	}
	if apiErr := decodeError(t, second); apiErr.Code != model.ErrConflict {
		t.Errorf("code = %s, want CONFLICT", apiErr.Code)
	}
}

func TestRegenerateReturnsToken(t *testing.T) {
	srv := testServer(t)
	w := doReq(t, srv, "POST", "/api/v1/apikeys/key_001/regenerate", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	var out model.RegeneratedKey
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(out.Token, "odk_") {
		t.Errorf("token %q lacks odk_ prefix", out.Token)
	}
}

func TestAuditExportCSV(t *testing.T) {
	srv := testServer(t)
	w := doReq(t, srv, "GET", "/api/v1/audit/export?format=csv&action=backup.run", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q", ct)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected header plus rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,actor_email,action") {
		t.Errorf("unexpected header %q", lines[0])
	}
}

func TestAuditExportRejectsBadFormat(t *testing.T) {
	srv := testServer(t)
	w := doReq(t, srv, "GET", "/api/v1/audit/export?format=xml", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateInvite(t *testing.T) {
	srv := testServer(t)
	w := doReq(t, srv, "POST", "/api/v1/invites", map[string]int{"max_uses": 3, "expires_in_days": 14})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	var inv model.InviteCode
	if err := json.Unmarshal(w.Body.Bytes(), &inv); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if inv.Code == "" || inv.MaxUses != 3 || inv.ExpiresAt == nil {
		t.Errorf("unexpected invite %+v", inv)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)
	getOK(t, srv, "/api/v1/users")
	w := doReq(t, srv, "GET", "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "opsdeck_sandbox_http_requests_total") {
		t.Error("metrics output missing request counter")
	}
}

func TestObservationRecordsResponseStatus(t *testing.T) {
	srv := testServer(t)
	if w := doReq(t, srv, "GET", "/api/v1/users/usr_999", nil); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	w := doReq(t, srv, "GET", "/metrics", nil)
	if !strings.Contains(w.Body.String(), `opsdeck_sandbox_http_requests_total{method="GET",status="404"}`) {
		t.Error("404 response not counted under its status label")
	}
}
