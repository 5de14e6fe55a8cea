package api

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/model"
)

const serversPath = "/api/v1/servers"

// Servers is the server namespace of the admin API.
type Servers struct {
	c *Client
}

// Servers returns the server namespace.
func (c *Client) Servers() *Servers { return &Servers{c} }

func (s *Servers) List(ctx context.Context, page, size int, filters model.ServerFilter) (model.Page[model.Server], error) {
	var pg model.Page[model.Server]
	err := s.c.get(ctx, serversPath, listQuery(page, size, filters), &pg)
	return pg, err
}

func (s *Servers) Get(ctx context.Context, id string) (*model.ServerDetail, error) {
	var d model.ServerDetail
	if err := s.c.get(ctx, serversPath+"/"+id, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Servers) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, serversPath+"/"+id)
}

// Collaborators is the collaborator namespace scoped to one server.
type Collaborators struct {
	c        *Client
	serverID string
}

// Collaborators returns the collaborator namespace for a server.
func (c *Client) Collaborators(serverID string) *Collaborators {
	return &Collaborators{c: c, serverID: serverID}
}

func (s *Collaborators) base() string {
	return serversPath + "/" + s.serverID + "/collaborators"
}

func (s *Collaborators) List(ctx context.Context, page, size int, filters model.CollaboratorFilter) (model.Page[model.Collaborator], error) {
	var pg model.Page[model.Collaborator]
	err := s.c.get(ctx, s.base(), listQuery(page, size, filters), &pg)
	return pg, err
}

func (s *Collaborators) Get(ctx context.Context, id string) (*model.Collaborator, error) {
	var d model.Collaborator
	if err := s.c.get(ctx, s.base()+"/"+id, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Collaborators) Remove(ctx context.Context, id string) error {
	return s.c.delete(ctx, s.base()+"/"+id)
}
