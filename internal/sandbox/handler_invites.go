package sandbox

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opsdeck/opsdeck/internal/sandbox/db"
	"github.com/opsdeck/opsdeck/pkg/model"
)

func (s *Server) handleListInvites(w http.ResponseWriter, r *http.Request) {
	q := db.InviteQuery{
		PageQuery: pageQuery(r),
		Status:    r.URL.Query().Get("status"),
	}
	invites, total, err := s.db.ListInvites(r.Context(), q)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	q.Clamp()
	respondPage(w, invites, total, q.Page, q.Size)
}

func (s *Server) handleGetInvite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	inv, err := s.db.GetInvite(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if inv == nil {
		notFound(w, "invite", id)
		return
	}
	respondJSON(w, http.StatusOK, inv)
}

func (s *Server) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MaxUses       int `json:"max_uses"`
		ExpiresInDays int `json:"expires_in_days"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.MaxUses <= 0 {
		respondError(w, model.NewValidationError("max_uses must be positive",
			model.FieldError{Field: "max_uses", Message: "must be greater than zero"}))
		return
	}
	inv, err := s.db.CreateInvite(r.Context(), "admin@opsdeck.example", body.MaxUses, body.ExpiresInDays)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.audit(r, "invite.create", "invite", inv.ID)
	respondJSON(w, http.StatusCreated, inv)
}

func (s *Server) handleRevokeInvite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found, err := s.db.RevokeInvite(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "invite", id)
		return
	}
	s.audit(r, "invite.revoke", "invite", id)
	respondJSON(w, http.StatusOK, map[string]string{"status": string(model.InviteRevoked)})
}
