package sandbox

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opsdeck/opsdeck/internal/sandbox/db"
)

func (s *Server) handleListServers(w http.ResponseWriter, r *http.Request) {
	q := db.ServerQuery{
		PageQuery: pageQuery(r),
		Search:    r.URL.Query().Get("q"),
		Owner:     r.URL.Query().Get("owner"),
		Status:    r.URL.Query().Get("status"),
	}
	servers, total, err := s.db.ListServers(r.Context(), q)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	q.Clamp()
	respondPage(w, servers, total, q.Page, q.Size)
}

func (s *Server) handleGetServer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := s.db.GetServer(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if d == nil {
		notFound(w, "server", id)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteServer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found, err := s.db.DeleteServer(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "server", id)
		return
	}
	s.audit(r, "server.delete", "server", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCollaborators(w http.ResponseWriter, r *http.Request) {
	serverID := chi.URLParam(r, "id")
	q := db.CollaboratorQuery{
		PageQuery: pageQuery(r),
		Role:      r.URL.Query().Get("role"),
	}
	collabs, total, err := s.db.ListCollaborators(r.Context(), serverID, q)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	q.Clamp()
	respondPage(w, collabs, total, q.Page, q.Size)
}

func (s *Server) handleGetCollaborator(w http.ResponseWriter, r *http.Request) {
	serverID := chi.URLParam(r, "id")
	cid := chi.URLParam(r, "cid")
	c, err := s.db.GetCollaborator(r.Context(), serverID, cid)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if c == nil {
		notFound(w, "collaborator", cid)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleRemoveCollaborator(w http.ResponseWriter, r *http.Request) {
	serverID := chi.URLParam(r, "id")
	cid := chi.URLParam(r, "cid")
	found, err := s.db.RemoveCollaborator(r.Context(), serverID, cid)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "collaborator", cid)
		return
	}
	s.audit(r, "server.remove_collaborator", "server", serverID)
	w.WriteHeader(http.StatusNoContent)
}
