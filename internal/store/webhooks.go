package store

import (
	"context"
	"log/slog"

	"github.com/opsdeck/opsdeck/internal/api"
	"github.com/opsdeck/opsdeck/pkg/model"
)

// Webhooks is the resource store for outbound webhooks.
type Webhooks struct {
	*Store[model.Webhook, model.WebhookDetail, model.WebhookFilter]
	api *api.Webhooks
}

// NewWebhooks creates the webhook store backed by the given API client.
func NewWebhooks(c *api.Client, logger *slog.Logger) *Webhooks {
	svc := c.Webhooks()
	return &Webhooks{
		Store: New[model.Webhook, model.WebhookDetail, model.WebhookFilter]("webhooks", svc, logger),
		api:   svc,
	}
}

func (s *Webhooks) SetEnabled(ctx context.Context, id string, enabled bool) error {
	fallback := "Failed to disable webhook"
	if enabled {
		fallback = "Failed to enable webhook"
	}
	return s.Do(ctx, id, fallback, func(ctx context.Context) error {
		return s.api.SetEnabled(ctx, id, enabled)
	})
}

func (s *Webhooks) Delete(ctx context.Context, id string) error {
	return s.Do(ctx, id, "Failed to delete webhook", func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
}
