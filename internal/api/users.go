package api

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/model"
)

const usersPath = "/api/v1/users"

// Users is the user namespace of the admin API.
type Users struct {
	c *Client
}

// Users returns the user namespace.
func (c *Client) Users() *Users { return &Users{c} }

func (u *Users) List(ctx context.Context, page, size int, filters model.UserFilter) (model.Page[model.User], error) {
	var pg model.Page[model.User]
	err := u.c.get(ctx, usersPath, listQuery(page, size, filters), &pg)
	return pg, err
}

func (u *Users) Get(ctx context.Context, id string) (*model.UserDetail, error) {
	var d model.UserDetail
	if err := u.c.get(ctx, usersPath+"/"+id, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (u *Users) Suspend(ctx context.Context, id, reason string) error {
	return u.c.post(ctx, usersPath+"/"+id+"/suspend", map[string]string{"reason": reason}, nil)
}

func (u *Users) Unsuspend(ctx context.Context, id string) error {
	return u.c.post(ctx, usersPath+"/"+id+"/unsuspend", nil, nil)
}

func (u *Users) Delete(ctx context.Context, id string) error {
	return u.c.delete(ctx, usersPath+"/"+id)
}

func (u *Users) OverridePlan(ctx context.Context, id, plan string) error {
	return u.c.post(ctx, usersPath+"/"+id+"/plan", map[string]string{"plan": plan}, nil)
}

func (u *Users) ExtendTrial(ctx context.Context, id string, days int) error {
	return u.c.post(ctx, usersPath+"/"+id+"/extend-trial", map[string]int{"days": days}, nil)
}
