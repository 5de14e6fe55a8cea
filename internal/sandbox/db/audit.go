package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/opsdeck/opsdeck/pkg/model"
)

// AuditQuery filters audit-log listings and exports.
type AuditQuery struct {
	PageQuery
	Actor      string
	Action     string
	TargetType string
	From       time.Time
	To         time.Time
}

const auditColumns = `id, actor_email, action, target_type, target_id, ip_address, metadata, created_at`

func scanAuditLog(scan func(...any) error) (model.AuditLog, error) {
	var a model.AuditLog
	var metadataJSON, createdAt string
	if err := scan(&a.ID, &a.ActorEmail, &a.Action, &a.TargetType, &a.TargetID,
		&a.IPAddress, &metadataJSON, &createdAt); err != nil {
		return a, err
	}
	json.Unmarshal([]byte(metadataJSON), &a.Metadata)
	a.CreatedAt = parseTime(createdAt)
	return a, nil
}

func (q AuditQuery) whereSQL() (string, []any) {
	var where []string
	var args []any
	if q.Actor != "" {
		where = append(where, "actor_email LIKE ?")
		args = append(args, "%"+q.Actor+"%")
	}
	if q.Action != "" {
		where = append(where, "action = ?")
		args = append(args, q.Action)
	}
	if q.TargetType != "" {
		where = append(where, "target_type = ?")
		args = append(args, q.TargetType)
	}
	if !q.From.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, fmtTime(q.From))
	}
	if !q.To.IsZero() {
		where = append(where, "created_at <= ?")
		args = append(args, fmtTime(q.To))
	}
	if len(where) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

// ListAuditLogs returns one page of audit entries plus the total match count.
func (s *Store) ListAuditLogs(ctx context.Context, q AuditQuery) ([]model.AuditLog, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "audit_logs")
	q.Clamp()
	whereSQL, args := q.whereSQL()

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_logs`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := q.limitOffset()
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+auditColumns+` FROM audit_logs`+whereSQL+` ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var logs []model.AuditLog
	for rows.Next() {
		a, err := scanAuditLog(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		logs = append(logs, a)
	}
	return logs, total, rows.Err()
}

// GetAuditLog looks up one entry, or nil.
func (s *Store) GetAuditLog(ctx context.Context, id string) (*model.AuditLog, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+auditColumns+` FROM audit_logs WHERE id = ?`, id)
	a, err := scanAuditLog(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AllAuditLogs returns every matching entry without pagination, oldest first,
// for exports.
func (s *Store) AllAuditLogs(ctx context.Context, q AuditQuery) ([]model.AuditLog, error) {
	whereSQL, args := q.whereSQL()
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+auditColumns+` FROM audit_logs`+whereSQL+` ORDER BY created_at`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []model.AuditLog
	for rows.Next() {
		a, err := scanAuditLog(rows.Scan)
		if err != nil {
			return nil, err
		}
		logs = append(logs, a)
	}
	return logs, rows.Err()
}

// RecordAudit appends an entry to the audit trail. The sandbox writes one for
// every mutation so the audit screen reflects console actions.
func (s *Store) RecordAudit(ctx context.Context, a model.AuditLog) error {
	metadataJSON, err := json.Marshal(a.Metadata)
	if err != nil {
		return err
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO audit_logs (`+auditColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ActorEmail, a.Action, a.TargetType, a.TargetID, a.IPAddress,
		string(metadataJSON), fmtTime(a.CreatedAt))
	return err
}
