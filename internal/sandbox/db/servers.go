package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/opsdeck/opsdeck/pkg/model"
)

// ServerQuery filters server listings.
type ServerQuery struct {
	PageQuery
	Search string // matches name or hostname
	Owner  string
	Status string
}

const serverColumns = `id, name, hostname, ip_address, owner_email, status,
	agent_version, disk_used_bytes, created_at`

func scanServer(scan func(...any) error) (model.Server, error) {
	var sv model.Server
	var status, createdAt string
	if err := scan(&sv.ID, &sv.Name, &sv.Hostname, &sv.IPAddress, &sv.OwnerEmail,
		&status, &sv.AgentVersion, &sv.DiskUsedB, &createdAt); err != nil {
		return sv, err
	}
	sv.Status = model.ServerStatus(status)
	sv.CreatedAt = parseTime(createdAt)
	return sv, nil
}

// ListServers returns one page of servers plus the total match count.
func (s *Store) ListServers(ctx context.Context, q ServerQuery) ([]model.Server, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "servers")
	q.Clamp()

	var where []string
	var args []any
	if q.Search != "" {
		where = append(where, "(name LIKE ? OR hostname LIKE ?)")
		args = append(args, "%"+q.Search+"%", "%"+q.Search+"%")
	}
	if q.Owner != "" {
		where = append(where, "owner_email = ?")
		args = append(args, q.Owner)
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
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM servers`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := q.limitOffset()
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+serverColumns+` FROM servers`+whereSQL+` ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var servers []model.Server
	for rows.Next() {
		sv, err := scanServer(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		servers = append(servers, sv)
	}
	return servers, total, rows.Err()
}

// GetServer returns the full server view with its nested collections, or nil
// if the id is unknown.
func (s *Store) GetServer(ctx context.Context, id string) (*model.ServerDetail, error) {
	s.logger.Debug("sql", "op", "select", "table", "servers", "id", id)

	row := s.db.QueryRowContext(ctx, `SELECT `+serverColumns+` FROM servers WHERE id = ?`, id)
	sv, err := scanServer(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d := model.ServerDetail{Server: sv}

	collabs, _, err := s.ListCollaborators(ctx, id, CollaboratorQuery{PageQuery: PageQuery{Size: 100}})
	if err != nil {
		return nil, err
	}
	d.Collaborators = collabs
	if d.Collaborators == nil {
		d.Collaborators = []model.Collaborator{}
	}

	d.GitConfig, err = s.gitConfigForServer(ctx, id)
	if err != nil {
		return nil, err
	}

	backups, _, err := s.ListBackups(ctx, BackupQuery{ServerID: id, PageQuery: PageQuery{Size: 100}})
	if err != nil {
		return nil, err
	}
	d.Backups = backups
	if d.Backups == nil {
		d.Backups = []model.ScheduledBackup{}
	}
	return &d, nil
}

// DeleteServer removes a server; collaborators, backups and git configs go
// with it via foreign keys.
func (s *Store) DeleteServer(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, s.db, `DELETE FROM servers WHERE id = ?`, id)
}

// CollaboratorQuery filters collaborator listings within one server.
type CollaboratorQuery struct {
	PageQuery
	Role string
}

func scanCollaborator(scan func(...any) error) (model.Collaborator, error) {
	var c model.Collaborator
	var addedAt string
	if err := scan(&c.ID, &c.Email, &c.Role, &addedAt); err != nil {
		return c, err
	}
	c.AddedAt = parseTime(addedAt)
	return c, nil
}

// ListCollaborators returns one page of a server's collaborators.
func (s *Store) ListCollaborators(ctx context.Context, serverID string, q CollaboratorQuery) ([]model.Collaborator, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "collaborators", "server_id", serverID)
	q.Clamp()

	where := []string{"server_id = ?"}
	args := []any{serverID}
	if q.Role != "" {
		where = append(where, "role = ?")
		args = append(args, q.Role)
	}
	whereSQL := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM collaborators`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := q.limitOffset()
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, role, added_at FROM collaborators`+whereSQL+` ORDER BY added_at LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []model.Collaborator
	for rows.Next() {
		c, err := scanCollaborator(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

// GetCollaborator looks up one collaborator within a server, or nil.
func (s *Store) GetCollaborator(ctx context.Context, serverID, id string) (*model.Collaborator, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, role, added_at FROM collaborators WHERE server_id = ? AND id = ?`, serverID, id)
	c, err := scanCollaborator(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// RemoveCollaborator revokes a collaborator's access to a server.
func (s *Store) RemoveCollaborator(ctx context.Context, serverID, id string) (bool, error) {
	return s.exists(ctx, s.db, `DELETE FROM collaborators WHERE server_id = ? AND id = ?`, serverID, id)
}
