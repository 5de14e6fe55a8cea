package sandbox

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opsdeck/opsdeck/internal/sandbox/db"
)

func (s *Server) handleListBackups(w http.ResponseWriter, r *http.Request) {
	q := db.BackupQuery{
		PageQuery: pageQuery(r),
		Search:    r.URL.Query().Get("q"),
		Enabled:   boolParam(r, "enabled"),
	}
	backups, total, err := s.db.ListBackups(r.Context(), q)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	q.Clamp()
	respondPage(w, backups, total, q.Page, q.Size)
}

func (s *Server) handleGetBackup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b, err := s.db.GetBackup(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if b == nil {
		notFound(w, "backup", id)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *Server) handleSetBackupEnabled(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	found, err := s.db.SetBackupEnabled(r.Context(), id, body.Enabled)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "backup", id)
		return
	}
	action := "backup.disable"
	if body.Enabled {
		action = "backup.enable"
	}
	s.audit(r, action, "backup", id)
	respondJSON(w, http.StatusOK, map[string]bool{"enabled": body.Enabled})
}

func (s *Server) handleRunBackup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found, err := s.db.RunBackupNow(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "backup", id)
		return
	}
	s.audit(r, "backup.run", "backup", id)
	respondJSON(w, http.StatusOK, map[string]string{"status": "started"})
}

func (s *Server) handleDeleteBackup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found, err := s.db.DeleteBackup(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "backup", id)
		return
	}
	s.audit(r, "backup.delete", "backup", id)
	w.WriteHeader(http.StatusNoContent)
}
