package api

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/model"
)

const invitesPath = "/api/v1/invites"

// Invites is the invite-code namespace of the admin API.
type Invites struct {
	c *Client
}

// Invites returns the invite-code namespace.
func (c *Client) Invites() *Invites { return &Invites{c} }

func (i *Invites) List(ctx context.Context, page, size int, filters model.InviteFilter) (model.Page[model.InviteCode], error) {
	var pg model.Page[model.InviteCode]
	err := i.c.get(ctx, invitesPath, listQuery(page, size, filters), &pg)
	return pg, err
}

func (i *Invites) Get(ctx context.Context, id string) (*model.InviteCode, error) {
	var d model.InviteCode
	if err := i.c.get(ctx, invitesPath+"/"+id, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create mints a new invite code. expiresInDays of zero means no expiry.
func (i *Invites) Create(ctx context.Context, maxUses, expiresInDays int) (*model.InviteCode, error) {
	var out model.InviteCode
	body := map[string]int{"max_uses": maxUses, "expires_in_days": expiresInDays}
	if err := i.c.post(ctx, invitesPath, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (i *Invites) Revoke(ctx context.Context, id string) error {
	return i.c.post(ctx, invitesPath+"/"+id+"/revoke", nil, nil)
}
