package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/opsdeck/opsdeck/pkg/model"
)

// GitConfigQuery filters git-sync listings.
type GitConfigQuery struct {
	PageQuery
	Search   string // matches server name or repo URL
	AutoSync *bool
}

const gitConfigColumns = `id, server_id, server_name, repo_url, branch, auto_sync,
	last_sync_at, last_sync_status, created_at`

func scanGitConfig(scan func(...any) error) (model.GitConfig, error) {
	var g model.GitConfig
	var createdAt string
	var lastSync *string
	if err := scan(&g.ID, &g.ServerID, &g.ServerName, &g.RepoURL, &g.Branch,
		&g.AutoSync, &lastSync, &g.LastSyncStatus, &createdAt); err != nil {
		return g, err
	}
	g.LastSyncAt = parseTimePtr(lastSync)
	g.CreatedAt = parseTime(createdAt)
	return g, nil
}

// ListGitConfigs returns one page of git-sync configs plus the total match count.
func (s *Store) ListGitConfigs(ctx context.Context, q GitConfigQuery) ([]model.GitConfig, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "git_configs")
	q.Clamp()

	var where []string
	var args []any
	if q.Search != "" {
		where = append(where, "(server_name LIKE ? OR repo_url LIKE ?)")
		args = append(args, "%"+q.Search+"%", "%"+q.Search+"%")
	}
	if q.AutoSync != nil {
		where = append(where, "auto_sync = ?")
		args = append(args, boolInt(*q.AutoSync))
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM git_configs`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := q.limitOffset()
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+gitConfigColumns+` FROM git_configs`+whereSQL+` ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var configs []model.GitConfig
	for rows.Next() {
		g, err := scanGitConfig(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		configs = append(configs, g)
	}
	return configs, total, rows.Err()
}

// GetGitConfig looks up one git-sync config, or nil.
func (s *Store) GetGitConfig(ctx context.Context, id string) (*model.GitConfig, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+gitConfigColumns+` FROM git_configs WHERE id = ?`, id)
	g, err := scanGitConfig(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// gitConfigForServer returns a server's git-sync config, or nil when the
// server has none.
func (s *Store) gitConfigForServer(ctx context.Context, serverID string) (*model.GitConfig, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+gitConfigColumns+` FROM git_configs WHERE server_id = ? LIMIT 1`, serverID)
	g, err := scanGitConfig(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// SetGitConfigAutoSync toggles scheduled pulls.
func (s *Store) SetGitConfigAutoSync(ctx context.Context, id string, enabled bool) (bool, error) {
	return s.exists(ctx, s.db,
		`UPDATE git_configs SET auto_sync = ? WHERE id = ?`, boolInt(enabled), id)
}

// DeleteGitConfig removes a git-sync config.
func (s *Store) DeleteGitConfig(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, s.db, `DELETE FROM git_configs WHERE id = ?`, id)
}
