package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opsdeck/opsdeck/internal/sandbox"
	"github.com/opsdeck/opsdeck/internal/sandbox/db"
	"github.com/opsdeck/opsdeck/pkg/model"
)

// startTestServer starts the sandbox API over a seeded in-memory database and
// returns its URL.
func startTestServer(t *testing.T) string {
	t.Helper()
	srvLogger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := db.Open(":memory:", srvLogger)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	if err := st.Seed(context.Background(), db.DefaultFixture()); err != nil {
		t.Fatalf("seed test db: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ts := httptest.NewServer(sandbox.New(st, srvLogger))
	t.Cleanup(ts.Close)
	return ts.URL
}

func runCLI(t *testing.T, serverURL string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{"--server", serverURL, "--log-level", "error"}, args...))

	err := root.Execute()
	return buf.String(), err
}

func TestUsersListShowsSeededPage(t *testing.T) {
	url := startTestServer(t)

	out, err := runCLI(t, url, "users", "list")
	if err != nil {
		t.Fatalf("users list: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "user01@example.com") {
		t.Errorf("expected first user in output, got: %s", out)
	}
	if !strings.Contains(out, "of 45 (page 1 of 3)") {
		t.Errorf("expected pagination footer, got: %s", out)
	}
}

func TestUsersListFilterByStatus(t *testing.T) {
	url := startTestServer(t)

	out, err := runCLI(t, url, "users", "list", "--status", "SUSPENDED")
	if err != nil {
		t.Fatalf("users list --status: %v", err)
	}
	if strings.Contains(out, "user01@example.com") {
		t.Errorf("active user leaked into suspended listing: %s", out)
	}
	if !strings.Contains(out, "SUSPENDED") {
		t.Errorf("expected suspended rows, got: %s", out)
	}
}

func TestUsersGetOutputsJSON(t *testing.T) {
	url := startTestServer(t)

	out, err := runCLI(t, url, "users", "get", "usr_001")
	if err != nil {
		t.Fatalf("users get: %v\noutput: %s", err, out)
	}

	var detail model.UserDetail
	if err := json.Unmarshal([]byte(out), &detail); err != nil {
		t.Fatalf("output is not JSON: %v\noutput: %s", err, out)
	}
	if detail.Email != "user01@example.com" {
		t.Errorf("email = %q", detail.Email)
	}
	if len(detail.Servers) == 0 {
		t.Error("expected nested servers in the detail payload")
	}
}

func TestUsersSuspendRequiresReason(t *testing.T) {
	url := startTestServer(t)

	_, err := runCLI(t, url, "users", "suspend", "usr_001")
	if err == nil {
		t.Fatal("expected an error without --reason")
	}
	if !strings.Contains(err.Error(), "reason") {
		t.Errorf("error = %v, want a reason-required message", err)
	}
}

func TestUsersSuspendThenListReflectsChange(t *testing.T) {
	url := startTestServer(t)

	out, err := runCLI(t, url, "users", "suspend", "usr_001", "--reason", "abuse report")
	if err != nil {
		t.Fatalf("users suspend: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "suspended") {
		t.Errorf("expected confirmation, got: %s", out)
	}

	out, err = runCLI(t, url, "users", "list", "--email", "user01@example.com")
	if err != nil {
		t.Fatalf("users list: %v", err)
	}
	if !strings.Contains(out, "SUSPENDED") {
		t.Errorf("suspension not reflected in listing: %s", out)
	}
}

func TestDeleteNeedsConfirmFlag(t *testing.T) {
	url := startTestServer(t)

	_, err := runCLI(t, url, "servers", "delete", "srv_001")
	if err == nil {
		t.Fatal("expected an error without --yes")
	}
	if !strings.Contains(err.Error(), "--yes") {
		t.Errorf("error = %v, want a --yes hint", err)
	}
}

func TestServersListSearch(t *testing.T) {
	url := startTestServer(t)

	out, err := runCLI(t, url, "servers", "list", "-q", "web-01")
	if err != nil {
		t.Fatalf("servers list: %v", err)
	}
	if !strings.Contains(out, "web-01.opsdeck.example") {
		t.Errorf("expected matching server, got: %s", out)
	}
	if strings.Contains(out, "web-02.opsdeck.example") {
		t.Errorf("non-matching server leaked into search results: %s", out)
	}
}

func TestAPIKeysRegeneratePrintsToken(t *testing.T) {
	url := startTestServer(t)

	out, err := runCLI(t, url, "apikeys", "regenerate", "key_001")
	if err != nil {
		t.Fatalf("apikeys regenerate: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "odk_") {
		t.Errorf("expected the one-time token in output, got: %s", out)
	}
}

func TestAuditExportWritesFile(t *testing.T) {
	url := startTestServer(t)
	dir := t.TempDir()

	out, err := runCLI(t, url, "audit", "export", "--format", "csv", "--dest", dir)
	if err != nil {
		t.Fatalf("audit export: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Exported ") {
		t.Errorf("expected export confirmation, got: %s", out)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read export dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one export file, found %d", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "id,") {
		t.Errorf("expected a CSV header, got: %.60s", data)
	}
}

func TestAuditExportRejectsBadFormat(t *testing.T) {
	url := startTestServer(t)

	_, err := runCLI(t, url, "audit", "export", "--format", "xml", "--dest", t.TempDir())
	if err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}

func TestInvitesCreatePrintsCode(t *testing.T) {
	url := startTestServer(t)

	out, err := runCLI(t, url, "invites", "create", "--max-uses", "5", "--expires-in-days", "14")
	if err != nil {
		t.Fatalf("invites create: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Created invite inv_") {
		t.Errorf("expected the new invite id, got: %s", out)
	}
}

func TestInvitesListFilterByStatus(t *testing.T) {
	url := startTestServer(t)

	out, err := runCLI(t, url, "invites", "list", "--status", "REVOKED")
	if err != nil {
		t.Fatalf("invites list --status: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "REVOKED") {
		t.Errorf("expected revoked rows, got: %s", out)
	}
	if strings.Contains(out, "EXHAUSTED") {
		t.Errorf("other statuses leaked into the filtered listing: %s", out)
	}
	if !strings.Contains(out, "OPSDECK") {
		t.Errorf("expected invite codes in the listing, got: %s", out)
	}
}

func TestListJSONOutput(t *testing.T) {
	url := startTestServer(t)

	out, err := runCLI(t, url, "templates", "list", "-o", "json")
	if err != nil {
		t.Fatalf("templates list -o json: %v", err)
	}

	var items []model.Template
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("output is not a JSON array: %v\noutput: %s", err, out)
	}
	if len(items) == 0 {
		t.Fatal("expected seeded templates")
	}
}

func TestListComputedColumns(t *testing.T) {
	url := startTestServer(t)

	out, err := runCLI(t, url, "users", "list",
		"--columns", "domain=item.email.split('@')[1]")
	if err != nil {
		t.Fatalf("users list --columns: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "DOMAIN") {
		t.Errorf("expected the computed column header, got: %s", out)
	}
	if !strings.Contains(out, "example.com") {
		t.Errorf("expected computed values, got: %s", out)
	}
}
