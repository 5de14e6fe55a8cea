package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/opsdeck/opsdeck/pkg/model"
)

// TemplateQuery filters template listings.
type TemplateQuery struct {
	PageQuery
	Search   string // matches name or description
	Status   string
	Category string
}

const templateColumns = `id, name, author_email, category, status, downloads, created_at`

func scanTemplate(scan func(...any) error) (model.Template, error) {
	var t model.Template
	var status, createdAt string
	if err := scan(&t.ID, &t.Name, &t.AuthorEmail, &t.Category, &status, &t.Downloads, &createdAt); err != nil {
		return t, err
	}
	t.Status = model.TemplateStatus(status)
	t.CreatedAt = parseTime(createdAt)
	return t, nil
}

// ListTemplates returns one page of templates plus the total match count.
func (s *Store) ListTemplates(ctx context.Context, q TemplateQuery) ([]model.Template, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "templates")
	q.Clamp()

	var where []string
	var args []any
	if q.Search != "" {
		where = append(where, "(name LIKE ? OR description LIKE ?)")
		args = append(args, "%"+q.Search+"%", "%"+q.Search+"%")
	}
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, q.Status)
	}
	if q.Category != "" {
		where = append(where, "category = ?")
		args = append(args, q.Category)
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM templates`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := q.limitOffset()
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+templateColumns+` FROM templates`+whereSQL+` ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var templates []model.Template
	for rows.Next() {
		t, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		templates = append(templates, t)
	}
	return templates, total, rows.Err()
}

// GetTemplate returns the full template body and moderation metadata, or nil.
func (s *Store) GetTemplate(ctx context.Context, id string) (*model.TemplateDetail, error) {
	s.logger.Debug("sql", "op", "select", "table", "templates", "id", id)

	var d model.TemplateDetail
	var status, createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+`, description, content, rejected_reason FROM templates WHERE id = ?`, id).
		Scan(&d.ID, &d.Name, &d.AuthorEmail, &d.Category, &status, &d.Downloads,
			&createdAt, &d.Description, &d.Content, &d.RejectedReason)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d.Status = model.TemplateStatus(status)
	d.CreatedAt = parseTime(createdAt)
	return &d, nil
}

// ApproveTemplate publishes a pending template. Approving a template that is
// not pending is a conflict.
func (s *Store) ApproveTemplate(ctx context.Context, id string) (bool, error) {
	return s.moderateTemplate(ctx, id, model.TemplateApproved, "")
}

// RejectTemplate rejects a pending template with a reason.
func (s *Store) RejectTemplate(ctx context.Context, id, reason string) (bool, error) {
	return s.moderateTemplate(ctx, id, model.TemplateRejected, reason)
}

func (s *Store) moderateTemplate(ctx context.Context, id string, next model.TemplateStatus, reason string) (bool, error) {
	var status string
	err := s.db.QueryRowContext(ctx, `SELECT status FROM templates WHERE id = ?`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if model.TemplateStatus(status) != model.TemplatePending {
		return true, model.NewConflictError("template has already been moderated")
	}
	return s.exists(ctx, s.db,
		`UPDATE templates SET status = ?, rejected_reason = ? WHERE id = ?`,
		string(next), reason, id)
}

// DeleteTemplate removes a template.
func (s *Store) DeleteTemplate(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, s.db, `DELETE FROM templates WHERE id = ?`, id)
}
