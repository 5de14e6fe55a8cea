package api

import (
	"context"
	"net/http"

	"github.com/opsdeck/opsdeck/pkg/model"
)

const auditPath = "/api/v1/audit"

// Audit is the audit-log namespace of the admin API.
type Audit struct {
	c *Client
}

// Audit returns the audit-log namespace.
func (c *Client) Audit() *Audit { return &Audit{c} }

func (a *Audit) List(ctx context.Context, page, size int, filters model.AuditFilter) (model.Page[model.AuditLog], error) {
	var pg model.Page[model.AuditLog]
	err := a.c.get(ctx, auditPath, listQuery(page, size, filters), &pg)
	return pg, err
}

func (a *Audit) Get(ctx context.Context, id string) (*model.AuditLog, error) {
	var d model.AuditLog
	if err := a.c.get(ctx, auditPath+"/"+id, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Export downloads the filtered audit trail as a blob in the given format.
func (a *Audit) Export(ctx context.Context, format model.ExportFormat, filters model.AuditFilter) ([]byte, error) {
	q := filters.Query()
	q.Set("format", string(format))
	return a.c.doRaw(ctx, http.MethodGet, auditPath+"/export", q, nil)
}
