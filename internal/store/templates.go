package store

import (
	"context"
	"log/slog"
	"strings"

	"github.com/opsdeck/opsdeck/internal/api"
	"github.com/opsdeck/opsdeck/pkg/model"
)

// Templates is the resource store for community templates under moderation.
type Templates struct {
	*Store[model.Template, model.TemplateDetail, model.TemplateFilter]
	api *api.Templates
}

// NewTemplates creates the template store backed by the given API client.
func NewTemplates(c *api.Client, logger *slog.Logger) *Templates {
	svc := c.Templates()
	return &Templates{
		Store: New[model.Template, model.TemplateDetail, model.TemplateFilter]("templates", svc, logger),
		api:   svc,
	}
}

func (s *Templates) Approve(ctx context.Context, id string) error {
	return s.Do(ctx, id, "Failed to approve template", func(ctx context.Context) error {
		return s.api.Approve(ctx, id)
	})
}

func (s *Templates) Reject(ctx context.Context, id, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	return s.Do(ctx, id, "Failed to reject template", func(ctx context.Context) error {
		return s.api.Reject(ctx, id, reason)
	})
}

func (s *Templates) Delete(ctx context.Context, id string) error {
	return s.Do(ctx, id, "Failed to delete template", func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
}
