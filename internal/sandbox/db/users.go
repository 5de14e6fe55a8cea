package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/opsdeck/opsdeck/pkg/model"
)

// UserQuery filters user listings.
type UserQuery struct {
	PageQuery
	Email  string
	Status string
	Plan   string
}

const userColumns = `u.id, u.email, u.name, u.status, u.plan,
	(SELECT COUNT(*) FROM servers s WHERE s.owner_email = u.email),
	u.created_at, u.last_login_at`

func scanUser(scan func(...any) error) (model.User, error) {
	var u model.User
	var status, createdAt string
	var lastLogin *string
	if err := scan(&u.ID, &u.Email, &u.Name, &status, &u.Plan,
		&u.ServerCount, &createdAt, &lastLogin); err != nil {
		return u, err
	}
	u.Status = model.UserStatus(status)
	u.CreatedAt = parseTime(createdAt)
	u.LastLoginAt = parseTimePtr(lastLogin)
	return u, nil
}

// ListUsers returns one page of users plus the total match count.
func (s *Store) ListUsers(ctx context.Context, q UserQuery) ([]model.User, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "users")
	q.Clamp()

	var where []string
	var args []any
	if q.Email != "" {
		where = append(where, "u.email LIKE ?")
		args = append(args, "%"+q.Email+"%")
	}
	if q.Status != "" {
		where = append(where, "u.status = ?")
		args = append(args, q.Status)
	}
	if q.Plan != "" {
		where = append(where, "u.plan = ?")
		args = append(args, q.Plan)
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users u`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := q.limitOffset()
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users u`+whereSQL+` ORDER BY u.created_at DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// GetUser returns the full account view, or nil if the id is unknown.
func (s *Store) GetUser(ctx context.Context, id string) (*model.UserDetail, error) {
	s.logger.Debug("sql", "op", "select", "table", "users", "id", id)

	var d model.UserDetail
	var status, createdAt string
	var lastLogin, trialEnds *string
	err := s.db.QueryRowContext(ctx,
		`SELECT u.id, u.email, u.name, u.status, u.plan,
			(SELECT COUNT(*) FROM servers s WHERE s.owner_email = u.email),
			u.created_at, u.last_login_at, u.suspended_reason, u.trial_ends_at
		 FROM users u WHERE u.id = ?`, id).
		Scan(&d.ID, &d.Email, &d.Name, &status, &d.Plan,
			&d.ServerCount, &createdAt, &lastLogin, &d.SuspendedReason, &trialEnds)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d.Status = model.UserStatus(status)
	d.CreatedAt = parseTime(createdAt)
	d.LastLoginAt = parseTimePtr(lastLogin)
	d.TrialEndsAt = parseTimePtr(trialEnds)

	servers, _, err := s.ListServers(ctx, ServerQuery{Owner: d.Email, PageQuery: PageQuery{Size: 100}})
	if err != nil {
		return nil, err
	}
	d.Servers = servers
	if d.Servers == nil {
		d.Servers = []model.Server{}
	}

	d.Invoices, err = s.listInvoices(ctx, d.Email)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// SuspendUser moves an account to SUSPENDED and records the reason.
func (s *Store) SuspendUser(ctx context.Context, id, reason string) (bool, error) {
	return s.exists(ctx, s.db,
		`UPDATE users SET status = ?, suspended_reason = ? WHERE id = ?`,
		string(model.UserSuspended), reason, id)
}

// UnsuspendUser restores a suspended account.
func (s *Store) UnsuspendUser(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, s.db,
		`UPDATE users SET status = ?, suspended_reason = '' WHERE id = ?`,
		string(model.UserActive), id)
}

// DeleteUser removes an account.
func (s *Store) DeleteUser(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, s.db, `DELETE FROM users WHERE id = ?`, id)
}

// SetUserPlan overrides the account plan.
func (s *Store) SetUserPlan(ctx context.Context, id, plan string) (bool, error) {
	return s.exists(ctx, s.db, `UPDATE users SET plan = ? WHERE id = ?`, plan, id)
}

// ExtendUserTrial pushes the trial end out by days, counting from the current
// trial end when one is set and from now otherwise.
func (s *Store) ExtendUserTrial(ctx context.Context, id string, days int) (bool, error) {
	var trialEnds *string
	err := s.db.QueryRowContext(ctx, `SELECT trial_ends_at FROM users WHERE id = ?`, id).Scan(&trialEnds)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	base := time.Now().UTC()
	if t := parseTimePtr(trialEnds); t != nil && t.After(base) {
		base = *t
	}
	next := base.AddDate(0, 0, days)
	return s.exists(ctx, s.db, `UPDATE users SET trial_ends_at = ? WHERE id = ?`, fmtTime(next), id)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// exists runs a mutation and reports whether it touched a row.
func (s *Store) exists(ctx context.Context, db execer, query string, args ...any) (bool, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
