package sandbox

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opsdeck/opsdeck/internal/sandbox/db"
	"github.com/opsdeck/opsdeck/pkg/model"
)

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	q := db.SubscriptionQuery{
		PageQuery: pageQuery(r),
		Email:     r.URL.Query().Get("email"),
		Status:    r.URL.Query().Get("status"),
		Plan:      r.URL.Query().Get("plan"),
	}
	subs, total, err := s.db.ListSubscriptions(r.Context(), q)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	q.Clamp()
	respondPage(w, subs, total, q.Page, q.Size)
}

func (s *Server) handleGetSubscription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := s.db.GetSubscription(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if d == nil {
		notFound(w, "subscription", id)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

func (s *Server) handleCancelSubscription(w http.ResponseWriter, r *http.Request) {
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
	found, err := s.db.CancelSubscription(r.Context(), id, body.Reason)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "subscription", id)
		return
	}
	s.audit(r, "subscription.cancel", "subscription", id)
	respondJSON(w, http.StatusOK, map[string]string{"status": "canceled"})
}

func (s *Server) handleSetSubscriptionPlan(w http.ResponseWriter, r *http.Request) {
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
	found, err := s.db.SetSubscriptionPlan(r.Context(), id, body.Plan)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "subscription", id)
		return
	}
	s.audit(r, "subscription.plan_override", "subscription", id)
	respondJSON(w, http.StatusOK, map[string]string{"plan": body.Plan})
}

func (s *Server) handleExtendSubscriptionTrial(w http.ResponseWriter, r *http.Request) {
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
	found, err := s.db.ExtendSubscriptionTrial(r.Context(), id, body.Days)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !found {
		notFound(w, "subscription", id)
		return
	}
	s.audit(r, "subscription.extend_trial", "subscription", id)
	respondJSON(w, http.StatusOK, map[string]int{"days": body.Days})
}
