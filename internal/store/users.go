package store

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/opsdeck/opsdeck/internal/api"
	"github.com/opsdeck/opsdeck/pkg/model"
)

// Precondition errors returned before any transport call is made. Views are
// expected to disable their confirming control until these cannot occur.
var (
	ErrReasonRequired = errors.New("a non-empty reason is required")
	ErrDaysPositive   = errors.New("day count must be a positive integer")
	ErrPlanRequired   = errors.New("a plan name is required")
)

// Users is the resource store for accounts.
type Users struct {
	*Store[model.User, model.UserDetail, model.UserFilter]
	api *api.Users
}

// NewUsers creates the user store backed by the given API client.
func NewUsers(c *api.Client, logger *slog.Logger) *Users {
	svc := c.Users()
	return &Users{
		Store: New[model.User, model.UserDetail, model.UserFilter]("users", svc, logger),
		api:   svc,
	}
}

func (s *Users) Suspend(ctx context.Context, id, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	return s.Do(ctx, id, "Failed to suspend user", func(ctx context.Context) error {
		return s.api.Suspend(ctx, id, reason)
	})
}

func (s *Users) Unsuspend(ctx context.Context, id string) error {
	return s.Do(ctx, id, "Failed to unsuspend user", func(ctx context.Context) error {
		return s.api.Unsuspend(ctx, id)
	})
}

func (s *Users) Delete(ctx context.Context, id string) error {
	return s.Do(ctx, id, "Failed to delete user", func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
}

func (s *Users) OverridePlan(ctx context.Context, id, plan string) error {
	if strings.TrimSpace(plan) == "" {
		return ErrPlanRequired
	}
	return s.Do(ctx, id, "Failed to override plan", func(ctx context.Context) error {
		return s.api.OverridePlan(ctx, id, plan)
	})
}

func (s *Users) ExtendTrial(ctx context.Context, id string, days int) error {
	if days <= 0 {
		return ErrDaysPositive
	}
	return s.Do(ctx, id, "Failed to extend trial", func(ctx context.Context) error {
		return s.api.ExtendTrial(ctx, id, days)
	})
}
