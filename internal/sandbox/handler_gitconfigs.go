package sandbox

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opsdeck/opsdeck/internal/sandbox/db"
)

func (s *Server) handleListGitConfigs(w http.ResponseWriter, r *http.Request) {
	q := db.GitConfigQuery{
		PageQuery: pageQuery(r),
		Search:    r.URL.Query().Get("q"),
		AutoSync:  boolParam(r, "auto_sync"),
	}
	configs, total, err := s.db.ListGitConfigs(r.Context(), q)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	q.Clamp()
	respondPage(w, configs, total, q.Page, q.Size)
}

func (s *Server) handleGetGitConfig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := s.db.GetGitConfig(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if g == nil {
		notFound(w, "git config", id)
		return
	}
	respondJSON(w, http.StatusOK, g)
}

func (s *Server) handleSetGitConfigAutoSync(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	found, err := s.db.SetGitConfigAutoSync(r.Context(), id, body.Enabled)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "git config", id)
		return
	}
	action := "gitconfig.autosync_off"
	if body.Enabled {
		action = "gitconfig.autosync_on"
	}
	s.audit(r, action, "git_config", id)
	respondJSON(w, http.StatusOK, map[string]bool{"auto_sync": body.Enabled})
}

func (s *Server) handleDeleteGitConfig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found, err := s.db.DeleteGitConfig(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "git config", id)
		return
	}
	s.audit(r, "gitconfig.delete", "git_config", id)
	w.WriteHeader(http.StatusNoContent)
}
