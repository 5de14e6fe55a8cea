package sandbox

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opsdeck/opsdeck/internal/sandbox/db"
)

func (s *Server) handleListWebhooks(w http.ResponseWriter, r *http.Request) {
	q := db.WebhookQuery{
		PageQuery: pageQuery(r),
		Email:     r.URL.Query().Get("email"),
		Enabled:   boolParam(r, "enabled"),
	}
	hooks, total, err := s.db.ListWebhooks(r.Context(), q)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	q.Clamp()
	respondPage(w, hooks, total, q.Page, q.Size)
}

func (s *Server) handleGetWebhook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := s.db.GetWebhook(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if d == nil {
		notFound(w, "webhook", id)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

func (s *Server) handleSetWebhookEnabled(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	found, err := s.db.SetWebhookEnabled(r.Context(), id, body.Enabled)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "webhook", id)
		return
	}
	action := "webhook.disable"
	if body.Enabled {
		action = "webhook.enable"
	}
	s.audit(r, action, "webhook", id)
	respondJSON(w, http.StatusOK, map[string]bool{"enabled": body.Enabled})
}

func (s *Server) handleDeleteWebhook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found, err := s.db.DeleteWebhook(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "webhook", id)
		return
	}
	s.audit(r, "webhook.delete", "webhook", id)
	w.WriteHeader(http.StatusNoContent)
}
