package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/opsdeck/opsdeck/pkg/model"
)

// WebhookQuery filters webhook listings. Enabled is tri-state.
type WebhookQuery struct {
	PageQuery
	Email   string
	Enabled *bool
}

const webhookColumns = `id, user_email, url, events, enabled, failure_count, last_delivery_at, created_at`

func scanWebhook(scan func(...any) error) (model.Webhook, error) {
	var w model.Webhook
	var eventsJSON, createdAt string
	var lastDelivery *string
	if err := scan(&w.ID, &w.UserEmail, &w.URL, &eventsJSON, &w.Enabled,
		&w.FailureCount, &lastDelivery, &createdAt); err != nil {
		return w, err
	}
	json.Unmarshal([]byte(eventsJSON), &w.Events)
	if w.Events == nil {
		w.Events = []string{}
	}
	w.LastDeliveryAt = parseTimePtr(lastDelivery)
	w.CreatedAt = parseTime(createdAt)
	return w, nil
}

// ListWebhooks returns one page of webhooks plus the total match count.
func (s *Store) ListWebhooks(ctx context.Context, q WebhookQuery) ([]model.Webhook, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "webhooks")
	q.Clamp()

	var where []string
	var args []any
	if q.Email != "" {
		where = append(where, "user_email LIKE ?")
		args = append(args, "%"+q.Email+"%")
	}
	if q.Enabled != nil {
		where = append(where, "enabled = ?")
		args = append(args, boolInt(*q.Enabled))
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM webhooks`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := q.limitOffset()
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+webhookColumns+` FROM webhooks`+whereSQL+` ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var hooks []model.Webhook
	for rows.Next() {
		w, err := scanWebhook(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		hooks = append(hooks, w)
	}
	return hooks, total, rows.Err()
}

// GetWebhook returns the webhook with its recent deliveries, or nil.
func (s *Store) GetWebhook(ctx context.Context, id string) (*model.WebhookDetail, error) {
	s.logger.Debug("sql", "op", "select", "table", "webhooks", "id", id)

	var d model.WebhookDetail
	var eventsJSON, createdAt string
	var lastDelivery *string
	err := s.db.QueryRowContext(ctx,
		`SELECT `+webhookColumns+`, secret_prefix FROM webhooks WHERE id = ?`, id).
		Scan(&d.ID, &d.UserEmail, &d.URL, &eventsJSON, &d.Enabled, &d.FailureCount,
			&lastDelivery, &createdAt, &d.SecretPrefix)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	json.Unmarshal([]byte(eventsJSON), &d.Events)
	if d.Events == nil {
		d.Events = []string{}
	}
	d.LastDeliveryAt = parseTimePtr(lastDelivery)
	d.CreatedAt = parseTime(createdAt)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event, status_code, duration_ms, created_at
		 FROM webhook_deliveries WHERE webhook_id = ? ORDER BY created_at DESC LIMIT 10`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	d.RecentDeliveries = []model.WebhookDelivery{}
	for rows.Next() {
		var del model.WebhookDelivery
		var delCreated string
		if err := rows.Scan(&del.ID, &del.Event, &del.StatusCode, &del.DurationMS, &delCreated); err != nil {
			return nil, err
		}
		del.CreatedAt = parseTime(delCreated)
		d.RecentDeliveries = append(d.RecentDeliveries, del)
	}
	return &d, rows.Err()
}

// SetWebhookEnabled toggles delivery. Enabling resets the failure counter.
func (s *Store) SetWebhookEnabled(ctx context.Context, id string, enabled bool) (bool, error) {
	if enabled {
		return s.exists(ctx, s.db,
			`UPDATE webhooks SET enabled = 1, failure_count = 0 WHERE id = ?`, id)
	}
	return s.exists(ctx, s.db, `UPDATE webhooks SET enabled = 0 WHERE id = ?`, id)
}

// DeleteWebhook removes a webhook and its delivery history.
func (s *Store) DeleteWebhook(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, s.db, `DELETE FROM webhooks WHERE id = ?`, id)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
