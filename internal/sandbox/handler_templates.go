package sandbox

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opsdeck/opsdeck/internal/sandbox/db"
	"github.com/opsdeck/opsdeck/pkg/model"
)

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	q := db.TemplateQuery{
		PageQuery: pageQuery(r),
		Search:    r.URL.Query().Get("q"),
		Status:    r.URL.Query().Get("status"),
		Category:  r.URL.Query().Get("category"),
	}
	templates, total, err := s.db.ListTemplates(r.Context(), q)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	q.Clamp()
	respondPage(w, templates, total, q.Page, q.Size)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := s.db.GetTemplate(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if d == nil {
		notFound(w, "template", id)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

func (s *Server) handleApproveTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found, err := s.db.ApproveTemplate(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "template", id)
		return
	}
	s.audit(r, "template.approve", "template", id)
	respondJSON(w, http.StatusOK, map[string]string{"status": string(model.TemplateApproved)})
}

func (s *Server) handleRejectTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Reason string `json:"reason"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Reason == "" {
		respondError(w, model.NewValidationError("reason is required",
			model.FieldError{Field: "reason", Message: "must not be empty"}))
		return
	}
	found, err := s.db.RejectTemplate(r.Context(), id, body.Reason)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "template", id)
		return
	}
	s.audit(r, "template.reject", "template", id)
	respondJSON(w, http.StatusOK, map[string]string{"status": string(model.TemplateRejected)})
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found, err := s.db.DeleteTemplate(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "template", id)
		return
	}
	s.audit(r, "template.delete", "template", id)
	w.WriteHeader(http.StatusNoContent)
}
