package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/opsdeck/opsdeck/pkg/model"
)

// SubscriptionQuery filters subscription listings.
type SubscriptionQuery struct {
	PageQuery
	Email  string
	Status string
	Plan   string
}

const subscriptionColumns = `id, user_email, plan, status, amount_cents, currency,
	current_period_end, trial_ends_at, created_at`

func scanSubscription(scan func(...any) error) (model.Subscription, error) {
	var sub model.Subscription
	var status, periodEnd, createdAt string
	var trialEnds *string
	if err := scan(&sub.ID, &sub.UserEmail, &sub.Plan, &status, &sub.AmountCents,
		&sub.Currency, &periodEnd, &trialEnds, &createdAt); err != nil {
		return sub, err
	}
	sub.Status = model.SubscriptionStatus(status)
	sub.CurrentPeriodEnd = parseTime(periodEnd)
	sub.TrialEndsAt = parseTimePtr(trialEnds)
	sub.CreatedAt = parseTime(createdAt)
	return sub, nil
}

// ListSubscriptions returns one page of subscriptions plus the total match count.
func (s *Store) ListSubscriptions(ctx context.Context, q SubscriptionQuery) ([]model.Subscription, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "subscriptions")
	q.Clamp()

	var where []string
	var args []any
	if q.Email != "" {
		where = append(where, "user_email LIKE ?")
		args = append(args, "%"+q.Email+"%")
	}
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, q.Status)
	}
	if q.Plan != "" {
		where = append(where, "plan = ?")
		args = append(args, q.Plan)
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscriptions`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := q.limitOffset()
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions`+whereSQL+` ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var subs []model.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		subs = append(subs, sub)
	}
	return subs, total, rows.Err()
}

// GetSubscription returns a subscription with its invoice history, or nil.
func (s *Store) GetSubscription(ctx context.Context, id string) (*model.SubscriptionDetail, error) {
	s.logger.Debug("sql", "op", "select", "table", "subscriptions", "id", id)

	var d model.SubscriptionDetail
	var status, periodEnd, createdAt string
	var trialEnds *string
	err := s.db.QueryRowContext(ctx,
		`SELECT `+subscriptionColumns+`, canceled_reason FROM subscriptions WHERE id = ?`, id).
		Scan(&d.ID, &d.UserEmail, &d.Plan, &status, &d.AmountCents, &d.Currency,
			&periodEnd, &trialEnds, &createdAt, &d.CanceledReason)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d.Status = model.SubscriptionStatus(status)
	d.CurrentPeriodEnd = parseTime(periodEnd)
	d.TrialEndsAt = parseTimePtr(trialEnds)
	d.CreatedAt = parseTime(createdAt)

	d.Invoices, err = s.listInvoices(ctx, d.UserEmail)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CancelSubscription marks a subscription CANCELED and records the reason.
// Returns found=false for unknown ids and a CONFLICT error when the
// subscription is already canceled.
func (s *Store) CancelSubscription(ctx context.Context, id, reason string) (bool, error) {
	var status string
	err := s.db.QueryRowContext(ctx, `SELECT status FROM subscriptions WHERE id = ?`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if model.SubscriptionStatus(status) == model.SubscriptionCanceled {
		return true, model.NewConflictError("subscription is already canceled")
	}
	return s.exists(ctx, s.db,
		`UPDATE subscriptions SET status = ?, canceled_reason = ? WHERE id = ?`,
		string(model.SubscriptionCanceled), reason, id)
}

// SetSubscriptionPlan overrides the billed plan.
func (s *Store) SetSubscriptionPlan(ctx context.Context, id, plan string) (bool, error) {
	return s.exists(ctx, s.db, `UPDATE subscriptions SET plan = ? WHERE id = ?`, plan, id)
}

// ExtendSubscriptionTrial pushes trial_ends_at out by days and keeps the
// status TRIALING.
func (s *Store) ExtendSubscriptionTrial(ctx context.Context, id string, days int) (bool, error) {
	var trialEnds *string
	var periodEnd string
	err := s.db.QueryRowContext(ctx,
		`SELECT trial_ends_at, current_period_end FROM subscriptions WHERE id = ?`, id).
		Scan(&trialEnds, &periodEnd)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	base := parseTime(periodEnd)
	if t := parseTimePtr(trialEnds); t != nil {
		base = *t
	}
	next := base.AddDate(0, 0, days)
	return s.exists(ctx, s.db,
		`UPDATE subscriptions SET trial_ends_at = ?, status = ? WHERE id = ?`,
		fmtTime(next), string(model.SubscriptionTrialing), id)
}

func (s *Store) listInvoices(ctx context.Context, email string) ([]model.Invoice, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount_cents, currency, status, issued_at
		 FROM invoices WHERE user_email = ? ORDER BY issued_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []model.Invoice{}
	for rows.Next() {
		var inv model.Invoice
		var issuedAt string
		if err := rows.Scan(&inv.ID, &inv.AmountCents, &inv.Currency, &inv.Status, &issuedAt); err != nil {
			return nil, err
		}
		inv.IssuedAt = parseTime(issuedAt)
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}
