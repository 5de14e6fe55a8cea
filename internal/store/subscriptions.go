package store

import (
	"context"
	"log/slog"
	"strings"

	"github.com/opsdeck/opsdeck/internal/api"
	"github.com/opsdeck/opsdeck/pkg/model"
)

// Subscriptions is the resource store for billing subscriptions.
type Subscriptions struct {
	*Store[model.Subscription, model.SubscriptionDetail, model.SubscriptionFilter]
	api *api.Subscriptions
}

// NewSubscriptions creates the subscription store backed by the given API client.
func NewSubscriptions(c *api.Client, logger *slog.Logger) *Subscriptions {
	svc := c.Subscriptions()
	return &Subscriptions{
		Store: New[model.Subscription, model.SubscriptionDetail, model.SubscriptionFilter]("subscriptions", svc, logger),
		api:   svc,
	}
}

func (s *Subscriptions) Cancel(ctx context.Context, id, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	return s.Do(ctx, id, "Failed to cancel subscription", func(ctx context.Context) error {
		return s.api.Cancel(ctx, id, reason)
	})
}

func (s *Subscriptions) OverridePlan(ctx context.Context, id, plan string) error {
	if strings.TrimSpace(plan) == "" {
		return ErrPlanRequired
	}
	return s.Do(ctx, id, "Failed to override plan", func(ctx context.Context) error {
		return s.api.OverridePlan(ctx, id, plan)
	})
}

func (s *Subscriptions) ExtendTrial(ctx context.Context, id string, days int) error {
	if days <= 0 {
		return ErrDaysPositive
	}
	return s.Do(ctx, id, "Failed to extend trial", func(ctx context.Context) error {
		return s.api.ExtendTrial(ctx, id, days)
	})
}
