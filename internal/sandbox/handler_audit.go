package sandbox

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/opsdeck/opsdeck/internal/sandbox/db"
	"github.com/opsdeck/opsdeck/pkg/model"
)

func auditQuery(r *http.Request) db.AuditQuery {
	q := db.AuditQuery{
		PageQuery:  pageQuery(r),
		Actor:      r.URL.Query().Get("actor"),
		Action:     r.URL.Query().Get("action"),
		TargetType: r.URL.Query().Get("target_type"),
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		q.From, _ = time.Parse(time.RFC3339, raw)
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		q.To, _ = time.Parse(time.RFC3339, raw)
	}
	return q
}

func (s *Server) handleListAuditLogs(w http.ResponseWriter, r *http.Request) {
	q := auditQuery(r)
	logs, total, err := s.db.ListAuditLogs(r.Context(), q)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	q.Clamp()
	respondPage(w, logs, total, q.Page, q.Size)
}

func (s *Server) handleGetAuditLog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, err := s.db.GetAuditLog(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if entry == nil {
		notFound(w, "audit log", id)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

func (s *Server) handleExportAuditLogs(w http.ResponseWriter, r *http.Request) {
	format := model.ExportFormat(r.URL.Query().Get("format"))
	if !format.Valid() {
		respondError(w, model.NewValidationError("unsupported export format",
			model.FieldError{Field: "format", Message: "must be csv or json"}))
		return
	}

	logs, err := s.db.AllAuditLogs(r.Context(), auditQuery(r))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	switch format {
	case model.ExportJSON:
		body, err := json.MarshalIndent(logs, "", "  ")
		if err != nil {
			respondStoreError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="audit.json"`)
		w.Write(body)
	case model.ExportCSV:
		body, err := auditCSV(logs)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="audit.csv"`)
		w.Write(body)
	}
}

func auditCSV(logs []model.AuditLog) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write([]string{"id", "actor_email", "action", "target_type", "target_id", "ip_address", "metadata", "created_at"}); err != nil {
		return nil, err
	}
	for _, entry := range logs {
		if err := cw.Write([]string{
			entry.ID,
			entry.ActorEmail,
			entry.Action,
			entry.TargetType,
			entry.TargetID,
			entry.IPAddress,
			flattenMetadata(entry.Metadata),
			entry.CreatedAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}

// flattenMetadata renders metadata as stable key=value pairs.
func flattenMetadata(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var buf bytes.Buffer
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(';')
		}
		fmt.Fprintf(&buf, "%s=%s", k, m[k])
	}
	return buf.String()
}
