package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/pkg/model"
)

// InviteQuery filters invite-code listings.
type InviteQuery struct {
	PageQuery
	Status string
}

const inviteColumns = `id, code, created_by, max_uses, uses, status, expires_at, created_at`

func scanInvite(scan func(...any) error) (model.InviteCode, error) {
	var inv model.InviteCode
	var status, createdAt string
	var expiresAt *string
	if err := scan(&inv.ID, &inv.Code, &inv.CreatedBy, &inv.MaxUses, &inv.Uses,
		&status, &expiresAt, &createdAt); err != nil {
		return inv, err
	}
	inv.Status = model.InviteStatus(status)
	inv.ExpiresAt = parseTimePtr(expiresAt)
	inv.CreatedAt = parseTime(createdAt)
	return inv, nil
}

// ListInvites returns one page of invite codes plus the total match count.
func (s *Store) ListInvites(ctx context.Context, q InviteQuery) ([]model.InviteCode, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "invite_codes")
	q.Clamp()

	whereSQL := ""
	var args []any
	if q.Status != "" {
		whereSQL = " WHERE status = ?"
		args = append(args, q.Status)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invite_codes`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := q.limitOffset()
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+inviteColumns+` FROM invite_codes`+whereSQL+` ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var invites []model.InviteCode
	for rows.Next() {
		inv, err := scanInvite(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		invites = append(invites, inv)
	}
	return invites, total, rows.Err()
}

// GetInvite looks up one invite code, or nil.
func (s *Store) GetInvite(ctx context.Context, id string) (*model.InviteCode, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+inviteColumns+` FROM invite_codes WHERE id = ?`, id)
	inv, err := scanInvite(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// CreateInvite mints a new invite code. expiresInDays of zero means no expiry.
func (s *Store) CreateInvite(ctx context.Context, createdBy string, maxUses, expiresInDays int) (*model.InviteCode, error) {
	now := time.Now().UTC()
	inv := model.InviteCode{
		ID:        "inv_" + uuid.New().String()[:8],
		Code:      strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10]),
		CreatedBy: createdBy,
		MaxUses:   maxUses,
		Status:    model.InviteActive,
		CreatedAt: now,
	}
	if expiresInDays > 0 {
		t := now.AddDate(0, 0, expiresInDays)
		inv.ExpiresAt = &t
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invite_codes (`+inviteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Code, inv.CreatedBy, inv.MaxUses, inv.Uses,
		string(inv.Status), fmtTimePtr(inv.ExpiresAt), fmtTime(inv.CreatedAt))
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// RevokeInvite deactivates an invite code. Revoking twice is a conflict.
func (s *Store) RevokeInvite(ctx context.Context, id string) (bool, error) {
	var status string
	err := s.db.QueryRowContext(ctx, `SELECT status FROM invite_codes WHERE id = ?`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if model.InviteStatus(status) == model.InviteRevoked {
		return true, model.NewConflictError("invite code is already revoked")
	}
	return s.exists(ctx, s.db,
		`UPDATE invite_codes SET status = ? WHERE id = ?`, string(model.InviteRevoked), id)
}
