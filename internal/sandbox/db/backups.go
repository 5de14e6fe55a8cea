package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/opsdeck/opsdeck/pkg/model"
)

// BackupQuery filters scheduled-backup listings.
type BackupQuery struct {
	PageQuery
	Search   string // matches server name
	Enabled  *bool
	ServerID string
}

const backupColumns = `id, server_id, server_name, schedule, enabled, retention_days,
	last_run_at, last_status, size_bytes, created_at`

func scanBackup(scan func(...any) error) (model.ScheduledBackup, error) {
	var b model.ScheduledBackup
	var createdAt string
	var lastRun *string
	if err := scan(&b.ID, &b.ServerID, &b.ServerName, &b.Schedule, &b.Enabled,
		&b.RetentionDays, &lastRun, &b.LastStatus, &b.SizeBytes, &createdAt); err != nil {
		return b, err
	}
	b.LastRunAt = parseTimePtr(lastRun)
	b.CreatedAt = parseTime(createdAt)
	return b, nil
}

// ListBackups returns one page of scheduled backups plus the total match count.
func (s *Store) ListBackups(ctx context.Context, q BackupQuery) ([]model.ScheduledBackup, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "scheduled_backups")
	q.Clamp()

	var where []string
	var args []any
	if q.Search != "" {
		where = append(where, "server_name LIKE ?")
		args = append(args, "%"+q.Search+"%")
	}
	if q.Enabled != nil {
		where = append(where, "enabled = ?")
		args = append(args, boolInt(*q.Enabled))
	}
	if q.ServerID != "" {
		where = append(where, "server_id = ?")
		args = append(args, q.ServerID)
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scheduled_backups`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := q.limitOffset()
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+backupColumns+` FROM scheduled_backups`+whereSQL+` ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var backups []model.ScheduledBackup
	for rows.Next() {
		b, err := scanBackup(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		backups = append(backups, b)
	}
	return backups, total, rows.Err()
}

// GetBackup looks up one scheduled backup, or nil.
func (s *Store) GetBackup(ctx context.Context, id string) (*model.ScheduledBackup, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+backupColumns+` FROM scheduled_backups WHERE id = ?`, id)
	b, err := scanBackup(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// SetBackupEnabled toggles the schedule.
func (s *Store) SetBackupEnabled(ctx context.Context, id string, enabled bool) (bool, error) {
	return s.exists(ctx, s.db,
		`UPDATE scheduled_backups SET enabled = ? WHERE id = ?`, boolInt(enabled), id)
}

// RunBackupNow records an immediate successful run. Running a disabled
// schedule is a conflict.
func (s *Store) RunBackupNow(ctx context.Context, id string) (bool, error) {
	var enabled bool
	err := s.db.QueryRowContext(ctx, `SELECT enabled FROM scheduled_backups WHERE id = ?`, id).Scan(&enabled)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !enabled {
		return true, model.NewConflictError("backup schedule is disabled")
	}
	return s.exists(ctx, s.db,
		`UPDATE scheduled_backups SET last_run_at = ?, last_status = 'success' WHERE id = ?`,
		fmtTime(time.Now()), id)
}

// DeleteBackup removes a schedule.
func (s *Store) DeleteBackup(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, s.db, `DELETE FROM scheduled_backups WHERE id = ?`, id)
}
