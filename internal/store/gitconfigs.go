package store

import (
	"context"
	"log/slog"

	"github.com/opsdeck/opsdeck/internal/api"
	"github.com/opsdeck/opsdeck/pkg/model"
)

// GitConfigs is the resource store for git-sync configurations.
type GitConfigs struct {
	*Store[model.GitConfig, model.GitConfig, model.GitConfigFilter]
	api *api.GitConfigs
}

// NewGitConfigs creates the git-sync store backed by the given API client.
func NewGitConfigs(c *api.Client, logger *slog.Logger) *GitConfigs {
	svc := c.GitConfigs()
	return &GitConfigs{
		Store: New[model.GitConfig, model.GitConfig, model.GitConfigFilter]("git configs", svc, logger),
		api:   svc,
	}
}

func (s *GitConfigs) SetAutoSync(ctx context.Context, id string, enabled bool) error {
	fallback := "Failed to disable auto-sync"
	if enabled {
		fallback = "Failed to enable auto-sync"
	}
	return s.Do(ctx, id, fallback, func(ctx context.Context) error {
		return s.api.SetAutoSync(ctx, id, enabled)
	})
}

func (s *GitConfigs) Delete(ctx context.Context, id string) error {
	return s.Do(ctx, id, "Failed to delete git config", func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
}
