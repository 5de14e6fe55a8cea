package api

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/model"
)

const templatesPath = "/api/v1/templates"

// Templates is the community-template namespace of the admin API.
type Templates struct {
	c *Client
}

// Templates returns the template namespace.
func (c *Client) Templates() *Templates { return &Templates{c} }

func (t *Templates) List(ctx context.Context, page, size int, filters model.TemplateFilter) (model.Page[model.Template], error) {
	var pg model.Page[model.Template]
	err := t.c.get(ctx, templatesPath, listQuery(page, size, filters), &pg)
	return pg, err
}

func (t *Templates) Get(ctx context.Context, id string) (*model.TemplateDetail, error) {
	var d model.TemplateDetail
	if err := t.c.get(ctx, templatesPath+"/"+id, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (t *Templates) Approve(ctx context.Context, id string) error {
	return t.c.post(ctx, templatesPath+"/"+id+"/approve", nil, nil)
}

func (t *Templates) Reject(ctx context.Context, id, reason string) error {
	return t.c.post(ctx, templatesPath+"/"+id+"/reject", map[string]string{"reason": reason}, nil)
}

func (t *Templates) Delete(ctx context.Context, id string) error {
	return t.c.delete(ctx, templatesPath+"/"+id)
}
