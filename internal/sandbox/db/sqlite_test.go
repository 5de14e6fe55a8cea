package db

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/opsdeck/opsdeck/pkg/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := Open(":memory:", logger)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := s.Seed(ctx, DefaultFixture()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return s
}

func TestListUsersPagination(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	users, total, err := s.ListUsers(ctx, UserQuery{PageQuery: PageQuery{Page: 0, Size: 20}})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if total != 45 {
		t.Errorf("total = %d, want 45", total)
	}
	if len(users) != 20 {
		t.Errorf("page size = %d, want 20", len(users))
	}

	last, _, err := s.ListUsers(ctx, UserQuery{PageQuery: PageQuery{Page: 2, Size: 20}})
	if err != nil {
		t.Fatalf("ListUsers page 2: %v", err)
	}
	if len(last) != 5 {
		t.Errorf("last page size = %d, want 5", len(last))
	}
}

func TestListUsersFilters(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	suspended, total, err := s.ListUsers(ctx, UserQuery{Status: string(model.UserSuspended)})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if total == 0 || total == 45 {
		t.Fatalf("suspended total = %d, want a strict subset", total)
	}
	for _, u := range suspended {
		if u.Status != model.UserSuspended {
			t.Errorf("user %s status = %s", u.ID, u.Status)
		}
	}

	_, total, err = s.ListUsers(ctx, UserQuery{Email: "user01"})
	if err != nil {
		t.Fatalf("ListUsers by email: %v", err)
	}
	if total != 1 {
		t.Errorf("email match total = %d, want 1", total)
	}
}

func TestGetUserDetailNestsCollections(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	d, err := s.GetUser(ctx, "usr_001")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if d == nil {
		t.Fatal("GetUser returned nil for seeded id")
	}
	if len(d.Servers) == 0 {
		t.Error("expected nested servers for usr_001")
	}
	if d.ServerCount != len(d.Servers) {
		t.Errorf("server_count = %d, servers = %d", d.ServerCount, len(d.Servers))
	}
	if len(d.Invoices) == 0 {
		t.Error("expected nested invoices for usr_001")
	}
}

func TestGetUserUnknownID(t *testing.T) {
	s := testStore(t)
	d, err := s.GetUser(context.Background(), "usr_999")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if d != nil {
		t.Errorf("GetUser = %+v, want nil", d)
	}
}

func TestSuspendAndUnsuspendUser(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	found, err := s.SuspendUser(ctx, "usr_002", "abuse report")
	if err != nil || !found {
		t.Fatalf("SuspendUser: found=%v err=%v", found, err)
	}
	d, err := s.GetUser(ctx, "usr_002")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if d.Status != model.UserSuspended || d.SuspendedReason != "abuse report" {
		t.Errorf("after suspend: status=%s reason=%q", d.Status, d.SuspendedReason)
	}

	if found, err = s.UnsuspendUser(ctx, "usr_002"); err != nil || !found {
		t.Fatalf("UnsuspendUser: found=%v err=%v", found, err)
	}
	d, _ = s.GetUser(ctx, "usr_002")
	if d.Status != model.UserActive || d.SuspendedReason != "" {
		t.Errorf("after unsuspend: status=%s reason=%q", d.Status, d.SuspendedReason)
	}
}

func TestDeleteServerCascades(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	found, err := s.DeleteServer(ctx, "srv_001")
	if err != nil || !found {
		t.Fatalf("DeleteServer: found=%v err=%v", found, err)
	}
	collabs, total, err := s.ListCollaborators(ctx, "srv_001", CollaboratorQuery{})
	if err != nil {
		t.Fatalf("ListCollaborators: %v", err)
	}
	if total != 0 || len(collabs) != 0 {
		t.Errorf("collaborators survived server delete: %d", total)
	}
}

func TestCancelSubscriptionConflict(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	found, err := s.CancelSubscription(ctx, "sub_001", "downgrade")
	if err != nil || !found {
		t.Fatalf("CancelSubscription: found=%v err=%v", found, err)
	}
	_, err = s.CancelSubscription(ctx, "sub_001", "again")
	if err == nil {
		t.Fatal("second cancel succeeded, want conflict")
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrConflict {
		t.Errorf("second cancel err = %v, want CONFLICT", err)
	}
}

func TestRegenerateAPIKeyRotatesPrefix(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	before, err := s.GetAPIKey(ctx, "key_001")
	if err != nil || before == nil {
		t.Fatalf("GetAPIKey: %v", err)
	}
	token, found, err := s.RegenerateAPIKey(ctx, "key_001")
	if err != nil || !found {
		t.Fatalf("RegenerateAPIKey: found=%v err=%v", found, err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	after, _ := s.GetAPIKey(ctx, "key_001")
	if after.Prefix == before.Prefix {
		t.Error("prefix unchanged after regenerate")
	}
	if token[:len(after.Prefix)] != after.Prefix {
		t.Errorf("stored prefix %q is not a prefix of token %q", after.Prefix, token)
	}
}

func TestAuditExportQueryOrdersOldestFirst(t *testing.T) {
	s := testStore(t)
	logs, err := s.AllAuditLogs(context.Background(), AuditQuery{Action: "user.suspend"})
	if err != nil {
		t.Fatalf("AllAuditLogs: %v", err)
	}
	if len(logs) == 0 {
		t.Fatal("no matching audit logs")
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].CreatedAt.Before(logs[i-1].CreatedAt) {
			t.Fatalf("logs out of order at %d", i)
		}
		if logs[i].Action != "user.suspend" {
			t.Fatalf("log %s action = %s", logs[i].ID, logs[i].Action)
		}
	}
}

func TestCreateInvite(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	inv, err := s.CreateInvite(ctx, "admin@opsdeck.example", 3, 30)
	if err != nil {
		t.Fatalf("CreateInvite: %v", err)
	}
	if inv.Code == "" || inv.MaxUses != 3 || inv.ExpiresAt == nil {
		t.Errorf("unexpected invite: %+v", inv)
	}
	got, err := s.GetInvite(ctx, inv.ID)
	if err != nil || got == nil {
		t.Fatalf("GetInvite: %v", err)
	}
	if got.Code != inv.Code {
		t.Errorf("code = %q, want %q", got.Code, inv.Code)
	}
}
