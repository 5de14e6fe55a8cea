package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/opsdeck/opsdeck/internal/api"
	"github.com/opsdeck/opsdeck/pkg/model"
)

// ErrBadExportFormat is returned before any transport call when the requested
// export format is not one the API accepts.
var ErrBadExportFormat = errors.New("export format must be csv or json")

// Audit is the resource store for the audit trail. Exports run under their own
// flag so a long download does not block list paging.
type Audit struct {
	*Store[model.AuditLog, model.AuditLog, model.AuditFilter]
	api *api.Audit

	mu        sync.Mutex
	exporting bool
}

// NewAudit creates the audit store backed by the given API client.
func NewAudit(c *api.Client, logger *slog.Logger) *Audit {
	svc := c.Audit()
	return &Audit{
		Store: New[model.AuditLog, model.AuditLog, model.AuditFilter]("audit logs", svc, logger),
		api:   svc,
	}
}

// Exporting reports whether an export download is in flight.
func (s *Audit) Exporting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exporting
}

// Export downloads the audit trail as a blob using the store's active filters.
// The caller is responsible for saving the bytes; the store never does file
// I/O itself.
func (s *Audit) Export(ctx context.Context, format model.ExportFormat) ([]byte, error) {
	if !format.Valid() {
		return nil, ErrBadExportFormat
	}

	s.mu.Lock()
	s.exporting = true
	s.mu.Unlock()
	s.ClearError()

	data, err := s.api.Export(ctx, format, s.Filters())

	s.mu.Lock()
	s.exporting = false
	s.mu.Unlock()

	if err != nil {
		s.setError(errorMessage(err, "Failed to export audit logs"))
		return nil, err
	}
	return data, nil
}

// setError records an error message directly; used by the export path which
// does not go through Fetch or Do.
func (s *Store[T, D, F]) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}
