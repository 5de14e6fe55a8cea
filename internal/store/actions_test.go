package store

import (
	"context"
	"errors"
	"testing"

	"github.com/opsdeck/opsdeck/internal/api"
)

// Precondition checks must fail before any transport call, so a client
// pointing at an unreachable address is safe here.
func deadClient() *api.Client {
	return api.NewClient("http://127.0.0.1:1", "", testLogger())
}

func TestSuspendRequiresReason(t *testing.T) {
	users := NewUsers(deadClient(), testLogger())
	if err := users.Suspend(context.Background(), "u1", "   "); !errors.Is(err, ErrReasonRequired) {
		t.Errorf("Suspend with blank reason = %v, want ErrReasonRequired", err)
	}
	if got := users.Snapshot().Err; got != "" {
		t.Errorf("store err = %q after precondition failure, want empty", got)
	}
}

func TestExtendTrialRequiresPositiveDays(t *testing.T) {
	users := NewUsers(deadClient(), testLogger())
	for _, days := range []int{0, -7} {
		if err := users.ExtendTrial(context.Background(), "u1", days); !errors.Is(err, ErrDaysPositive) {
			t.Errorf("ExtendTrial(%d) = %v, want ErrDaysPositive", days, err)
		}
	}
}

func TestCancelRequiresReason(t *testing.T) {
	subs := NewSubscriptions(deadClient(), testLogger())
	if err := subs.Cancel(context.Background(), "s1", ""); !errors.Is(err, ErrReasonRequired) {
		t.Errorf("Cancel with empty reason = %v, want ErrReasonRequired", err)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	tmpl := NewTemplates(deadClient(), testLogger())
	if err := tmpl.Reject(context.Background(), "t1", ""); !errors.Is(err, ErrReasonRequired) {
		t.Errorf("Reject with empty reason = %v, want ErrReasonRequired", err)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	audit := NewAudit(deadClient(), testLogger())
	if _, err := audit.Export(context.Background(), "xml"); !errors.Is(err, ErrBadExportFormat) {
		t.Errorf("Export(xml) = %v, want ErrBadExportFormat", err)
	}
	if audit.Exporting() {
		t.Error("exporting flag set after precondition failure")
	}
}

func TestInviteCreateRequiresPositiveMaxUses(t *testing.T) {
	invites := NewInvites(deadClient(), testLogger())
	if _, err := invites.Create(context.Background(), 0, 0); !errors.Is(err, ErrMaxUsesPositive) {
		t.Errorf("Create(0) = %v, want ErrMaxUsesPositive", err)
	}
}
