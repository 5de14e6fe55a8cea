package store

import (
	"context"
	"log/slog"

	"github.com/opsdeck/opsdeck/internal/api"
	"github.com/opsdeck/opsdeck/pkg/model"
)

// Backups is the resource store for scheduled backups.
type Backups struct {
	*Store[model.ScheduledBackup, model.ScheduledBackup, model.BackupFilter]
	api *api.Backups
}

// NewBackups creates the scheduled-backup store backed by the given API client.
func NewBackups(c *api.Client, logger *slog.Logger) *Backups {
	svc := c.Backups()
	return &Backups{
		Store: New[model.ScheduledBackup, model.ScheduledBackup, model.BackupFilter]("backups", svc, logger),
		api:   svc,
	}
}

func (s *Backups) SetEnabled(ctx context.Context, id string, enabled bool) error {
	fallback := "Failed to disable backup schedule"
	if enabled {
		fallback = "Failed to enable backup schedule"
	}
	return s.Do(ctx, id, fallback, func(ctx context.Context) error {
		return s.api.SetEnabled(ctx, id, enabled)
	})
}

func (s *Backups) RunNow(ctx context.Context, id string) error {
	return s.Do(ctx, id, "Failed to start backup run", func(ctx context.Context) error {
		return s.api.RunNow(ctx, id)
	})
}

func (s *Backups) Delete(ctx context.Context, id string) error {
	return s.Do(ctx, id, "Failed to delete backup schedule", func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
}
