package api

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/model"
)

const webhooksPath = "/api/v1/webhooks"

// Webhooks is the webhook namespace of the admin API.
type Webhooks struct {
	c *Client
}

// Webhooks returns the webhook namespace.
func (c *Client) Webhooks() *Webhooks { return &Webhooks{c} }

func (w *Webhooks) List(ctx context.Context, page, size int, filters model.WebhookFilter) (model.Page[model.Webhook], error) {
	var pg model.Page[model.Webhook]
	err := w.c.get(ctx, webhooksPath, listQuery(page, size, filters), &pg)
	return pg, err
}

func (w *Webhooks) Get(ctx context.Context, id string) (*model.WebhookDetail, error) {
	var d model.WebhookDetail
	if err := w.c.get(ctx, webhooksPath+"/"+id, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (w *Webhooks) SetEnabled(ctx context.Context, id string, enabled bool) error {
	return w.c.post(ctx, webhooksPath+"/"+id+"/enabled", map[string]bool{"enabled": enabled}, nil)
}

func (w *Webhooks) Delete(ctx context.Context, id string) error {
	return w.c.delete(ctx, webhooksPath+"/"+id)
}
