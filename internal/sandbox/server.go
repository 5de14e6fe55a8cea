// Package sandbox is a self-contained fixture API server. It serves the same
// REST contract the console speaks, backed by a seeded SQLite database, so
// the console can be demoed and tested without the production control plane.
package sandbox

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/opsdeck/opsdeck/internal/sandbox/db"
	"github.com/opsdeck/opsdeck/pkg/model"
)

// Server is the sandbox REST API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	db        *db.Store
	metrics   *metrics
	startTime time.Time
}

// New creates a Server with all routes registered.
func New(st *db.Store, logger *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "sandbox"),
		db:        st,
		metrics:   newMetrics(),
		startTime: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(tagRequest)
	r.Use(s.observe)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetUser)
				r.Delete("/", s.handleDeleteUser)
				r.Post("/suspend", s.handleSuspendUser)
				r.Post("/unsuspend", s.handleUnsuspendUser)
				r.Post("/plan", s.handleSetUserPlan)
				r.Post("/extend-trial", s.handleExtendUserTrial)
			})
		})

		r.Route("/servers", func(r chi.Router) {
			r.Get("/", s.handleListServers)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetServer)
				r.Delete("/", s.handleDeleteServer)
				r.Route("/collaborators", func(r chi.Router) {
					r.Get("/", s.handleListCollaborators)
					r.Get("/{cid}", s.handleGetCollaborator)
					r.Delete("/{cid}", s.handleRemoveCollaborator)
				})
			})
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/", s.handleListSubscriptions)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSubscription)
				r.Post("/cancel", s.handleCancelSubscription)
				r.Post("/plan", s.handleSetSubscriptionPlan)
				r.Post("/extend-trial", s.handleExtendSubscriptionTrial)
			})
		})

		r.Route("/apikeys", func(r chi.Router) {
			r.Get("/", s.handleListAPIKeys)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetAPIKey)
				r.Post("/revoke", s.handleRevokeAPIKey)
				r.Post("/regenerate", s.handleRegenerateAPIKey)
			})
		})

		r.Route("/audit", func(r chi.Router) {
			r.Get("/", s.handleListAuditLogs)
			r.Get("/export", s.handleExportAuditLogs)
			r.Get("/{id}", s.handleGetAuditLog)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", s.handleListTemplates)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetTemplate)
				r.Delete("/", s.handleDeleteTemplate)
				r.Post("/approve", s.handleApproveTemplate)
				r.Post("/reject", s.handleRejectTemplate)
			})
		})

		r.Route("/webhooks", func(r chi.Router) {
			r.Get("/", s.handleListWebhooks)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetWebhook)
				r.Delete("/", s.handleDeleteWebhook)
				r.Post("/enabled", s.handleSetWebhookEnabled)
			})
		})

		r.Route("/backups", func(r chi.Router) {
			r.Get("/", s.handleListBackups)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetBackup)
				r.Delete("/", s.handleDeleteBackup)
				r.Post("/enabled", s.handleSetBackupEnabled)
				r.Post("/run", s.handleRunBackup)
			})
		})

		r.Route("/gitconfigs", func(r chi.Router) {
			r.Get("/", s.handleListGitConfigs)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetGitConfig)
				r.Delete("/", s.handleDeleteGitConfig)
				r.Post("/auto-sync", s.handleSetGitConfigAutoSync)
			})
		})

		r.Route("/invites", func(r chi.Router) {
			r.Get("/", s.handleListInvites)
			r.Post("/", s.handleCreateInvite)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetInvite)
				r.Post("/revoke", s.handleRevokeInvite)
			})
		})
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}

// --- request parsing helpers ---

// pageQuery reads the page/size parameters shared by all list endpoints.
func pageQuery(r *http.Request) db.PageQuery {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	return db.PageQuery{Page: page, Size: size}
}

// boolParam reads a tri-state boolean query parameter; absent means nil.
func boolParam(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// decodeBody parses a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, model.NewValidationError("invalid request body"))
		return false
	}
	return true
}

// notFound writes the standard NOT_FOUND error for a resource id.
func notFound(w http.ResponseWriter, resource, id string) {
	respondError(w, model.NewNotFoundError(resource, id))
}

// audit appends a trail entry for a console mutation. Failures are logged
// and swallowed; the mutation itself already succeeded.
func (s *Server) audit(r *http.Request, action, targetType, targetID string) {
	entry := model.AuditLog{
		ID:         "aud_" + uuid.New().String()[:8],
		ActorEmail: "admin@opsdeck.example",
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		IPAddress:  r.RemoteAddr,
		Metadata:   map[string]string{"request_id": RequestIDFromContext(r.Context())},
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.db.RecordAudit(r.Context(), entry); err != nil {
		s.logger.Warn("audit record failed", "action", action, "error", err)
	}
}
