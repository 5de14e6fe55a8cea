package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/pkg/model"
)

// APIKeyQuery filters API-key listings.
type APIKeyQuery struct {
	PageQuery
	Email  string
	Status string
}

const apiKeyColumns = `id, user_email, label, prefix, status, last_used_at, created_at`

func scanAPIKey(scan func(...any) error) (model.APIKey, error) {
	var k model.APIKey
	var status, createdAt string
	var lastUsed *string
	if err := scan(&k.ID, &k.UserEmail, &k.Label, &k.Prefix, &status, &lastUsed, &createdAt); err != nil {
		return k, err
	}
	k.Status = model.APIKeyStatus(status)
	k.LastUsedAt = parseTimePtr(lastUsed)
	k.CreatedAt = parseTime(createdAt)
	return k, nil
}

// ListAPIKeys returns one page of API keys plus the total match count.
func (s *Store) ListAPIKeys(ctx context.Context, q APIKeyQuery) ([]model.APIKey, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "api_keys")
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
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM api_keys`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := q.limitOffset()
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys`+whereSQL+` ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var keys []model.APIKey
	for rows.Next() {
		k, err := scanAPIKey(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		keys = append(keys, k)
	}
	return keys, total, rows.Err()
}

// GetAPIKey returns the key detail with scopes, or nil.
func (s *Store) GetAPIKey(ctx context.Context, id string) (*model.APIKeyDetail, error) {
	s.logger.Debug("sql", "op", "select", "table", "api_keys", "id", id)

	var d model.APIKeyDetail
	var status, createdAt, scopesJSON string
	var lastUsed *string
	err := s.db.QueryRowContext(ctx,
		`SELECT `+apiKeyColumns+`, scopes FROM api_keys WHERE id = ?`, id).
		Scan(&d.ID, &d.UserEmail, &d.Label, &d.Prefix, &status, &lastUsed, &createdAt, &scopesJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d.Status = model.APIKeyStatus(status)
	d.LastUsedAt = parseTimePtr(lastUsed)
	d.CreatedAt = parseTime(createdAt)
	if err := json.Unmarshal([]byte(scopesJSON), &d.Scopes); err != nil {
		d.Scopes = nil
	}
	if d.Scopes == nil {
		d.Scopes = []string{}
	}
	return &d, nil
}

// RevokeAPIKey marks a key REVOKED. Revoking twice is a conflict.
func (s *Store) RevokeAPIKey(ctx context.Context, id string) (bool, error) {
	var status string
	err := s.db.QueryRowContext(ctx, `SELECT status FROM api_keys WHERE id = ?`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if model.APIKeyStatus(status) == model.APIKeyRevoked {
		return true, model.NewConflictError("key is already revoked")
	}
	return s.exists(ctx, s.db,
		`UPDATE api_keys SET status = ? WHERE id = ?`, string(model.APIKeyRevoked), id)
}

// RegenerateAPIKey rotates the key material and returns the new plaintext
// token. Only the prefix is retained server-side.
func (s *Store) RegenerateAPIKey(ctx context.Context, id string) (string, bool, error) {
	token := "odk_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	prefix := token[:12]
	found, err := s.exists(ctx, s.db,
		`UPDATE api_keys SET prefix = ?, status = ? WHERE id = ?`,
		prefix, string(model.APIKeyActive), id)
	if err != nil || !found {
		return "", found, err
	}
	return token, true, nil
}
