package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/opsdeck/opsdeck/internal/api"
	"github.com/opsdeck/opsdeck/pkg/model"
)

// ErrMaxUsesPositive is returned before any transport call when creating an
// invite with a non-positive use count.
var ErrMaxUsesPositive = errors.New("max uses must be a positive integer")

// Invites is the resource store for signup invite codes.
type Invites struct {
	*Store[model.InviteCode, model.InviteCode, model.InviteFilter]
	api *api.Invites
}

// NewInvites creates the invite-code store backed by the given API client.
func NewInvites(c *api.Client, logger *slog.Logger) *Invites {
	svc := c.Invites()
	return &Invites{
		Store: New[model.InviteCode, model.InviteCode, model.InviteFilter]("invite codes", svc, logger),
		api:   svc,
	}
}

// Create mints a new invite code and returns it alongside the usual
// list re-fetch.
func (s *Invites) Create(ctx context.Context, maxUses, expiresInDays int) (*model.InviteCode, error) {
	if maxUses <= 0 {
		return nil, ErrMaxUsesPositive
	}
	var created *model.InviteCode
	err := s.Do(ctx, "", "Failed to create invite code", func(ctx context.Context) error {
		out, err := s.api.Create(ctx, maxUses, expiresInDays)
		if err != nil {
			return err
		}
		created = out
		return nil
	})
	return created, err
}

func (s *Invites) Revoke(ctx context.Context, id string) error {
	return s.Do(ctx, id, "Failed to revoke invite code", func(ctx context.Context) error {
		return s.api.Revoke(ctx, id)
	})
}
