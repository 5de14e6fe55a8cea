package sandbox

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opsdeck/opsdeck/internal/sandbox/db"
	"github.com/opsdeck/opsdeck/pkg/model"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	q := db.UserQuery{
		PageQuery: pageQuery(r),
		Email:     r.URL.Query().Get("email"),
		Status:    r.URL.Query().Get("status"),
		Plan:      r.URL.Query().Get("plan"),
	}
	users, total, err := s.db.ListUsers(r.Context(), q)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	q.Clamp()
	respondPage(w, users, total, q.Page, q.Size)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := s.db.GetUser(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if d == nil {
		notFound(w, "user", id)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

func (s *Server) handleSuspendUser(w http.ResponseWriter, r *http.Request) {
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
	found, err := s.db.SuspendUser(r.Context(), id, body.Reason)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "user", id)
		return
	}
	s.audit(r, "user.suspend", "user", id)
	respondJSON(w, http.StatusOK, map[string]string{"status": "suspended"})
}

func (s *Server) handleUnsuspendUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found, err := s.db.UnsuspendUser(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "user", id)
		return
	}
	s.audit(r, "user.unsuspend", "user", id)
	respondJSON(w, http.StatusOK, map[string]string{"status": "active"})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found, err := s.db.DeleteUser(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "user", id)
		return
	}
	s.audit(r, "user.delete", "user", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetUserPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Plan string `json:"plan"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Plan == "" {
		respondError(w, model.NewValidationError("plan is required",
			model.FieldError{Field: "plan", Message: "must not be empty"}))
		return
	}
	found, err := s.db.SetUserPlan(r.Context(), id, body.Plan)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "user", id)
		return
	}
	s.audit(r, "user.plan_override", "user", id)
	respondJSON(w, http.StatusOK, map[string]string{"plan": body.Plan})
}

func (s *Server) handleExtendUserTrial(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Days int `json:"days"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Days <= 0 {
		respondError(w, model.NewValidationError("days must be positive",
			model.FieldError{Field: "days", Message: "must be greater than zero"}))
		return
	}
	found, err := s.db.ExtendUserTrial(r.Context(), id, body.Days)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "user", id)
		return
	}
	s.audit(r, "user.extend_trial", "user", id)
	respondJSON(w, http.StatusOK, map[string]int{"days": body.Days})
}
