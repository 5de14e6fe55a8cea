package store

import (
	"context"
	"log/slog"

	"github.com/opsdeck/opsdeck/internal/api"
	"github.com/opsdeck/opsdeck/pkg/model"
)

// Servers is the resource store for managed servers.
type Servers struct {
	*Store[model.Server, model.ServerDetail, model.ServerFilter]
	api *api.Servers
}

// NewServers creates the server store backed by the given API client.
func NewServers(c *api.Client, logger *slog.Logger) *Servers {
	svc := c.Servers()
	return &Servers{
		Store: New[model.Server, model.ServerDetail, model.ServerFilter]("servers", svc, logger),
		api:   svc,
	}
}

func (s *Servers) Delete(ctx context.Context, id string) error {
	return s.Do(ctx, id, "Failed to delete server", func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
}

// Collaborators is the resource store for one server's collaborators. Each
// open server detail view gets its own instance.
type Collaborators struct {
	*Store[model.Collaborator, model.Collaborator, model.CollaboratorFilter]
	api *api.Collaborators
}

// NewCollaborators creates a collaborator store scoped to a server.
func NewCollaborators(c *api.Client, serverID string, logger *slog.Logger) *Collaborators {
	svc := c.Collaborators(serverID)
	return &Collaborators{
		Store: New[model.Collaborator, model.Collaborator, model.CollaboratorFilter]("collaborators", svc, logger),
		api:   svc,
	}
}

func (s *Collaborators) Remove(ctx context.Context, id string) error {
	return s.Do(ctx, id, "Failed to remove collaborator", func(ctx context.Context) error {
		return s.api.Remove(ctx, id)
	})
}
