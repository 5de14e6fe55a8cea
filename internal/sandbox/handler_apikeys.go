package sandbox

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opsdeck/opsdeck/internal/sandbox/db"
	"github.com/opsdeck/opsdeck/pkg/model"
)

func (s *Server) handleListAPIKeys(w http.ResponseWriter, r *http.Request) {
	q := db.APIKeyQuery{
		PageQuery: pageQuery(r),
		Email:     r.URL.Query().Get("email"),
		Status:    r.URL.Query().Get("status"),
	}
	keys, total, err := s.db.ListAPIKeys(r.Context(), q)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	q.Clamp()
	respondPage(w, keys, total, q.Page, q.Size)
}

func (s *Server) handleGetAPIKey(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := s.db.GetAPIKey(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if d == nil {
		notFound(w, "api key", id)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

func (s *Server) handleRevokeAPIKey(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found, err := s.db.RevokeAPIKey(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "api key", id)
		return
	}
	s.audit(r, "apikey.revoke", "api_key", id)
	respondJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}

func (s *Server) handleRegenerateAPIKey(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	token, found, err := s.db.RegenerateAPIKey(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "api key", id)
		return
	}
	s.audit(r, "apikey.regenerate", "api_key", id)
	respondJSON(w, http.StatusOK, model.RegeneratedKey{Token: token})
}
