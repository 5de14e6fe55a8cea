package api

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/model"
)

const backupsPath = "/api/v1/backups"

// Backups is the scheduled-backup namespace of the admin API.
type Backups struct {
	c *Client
}

// Backups returns the scheduled-backup namespace.
func (c *Client) Backups() *Backups { return &Backups{c} }

func (b *Backups) List(ctx context.Context, page, size int, filters model.BackupFilter) (model.Page[model.ScheduledBackup], error) {
	var pg model.Page[model.ScheduledBackup]
	err := b.c.get(ctx, backupsPath, listQuery(page, size, filters), &pg)
	return pg, err
}

func (b *Backups) Get(ctx context.Context, id string) (*model.ScheduledBackup, error) {
	var d model.ScheduledBackup
	if err := b.c.get(ctx, backupsPath+"/"+id, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (b *Backups) SetEnabled(ctx context.Context, id string, enabled bool) error {
	return b.c.post(ctx, backupsPath+"/"+id+"/enabled", map[string]bool{"enabled": enabled}, nil)
}

// RunNow asks the backend to start an out-of-schedule run.
func (b *Backups) RunNow(ctx context.Context, id string) error {
	return b.c.post(ctx, backupsPath+"/"+id+"/run", nil, nil)
}

func (b *Backups) Delete(ctx context.Context, id string) error {
	return b.c.delete(ctx, backupsPath+"/"+id)
}
