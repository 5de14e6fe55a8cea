package api

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/model"
)

const subscriptionsPath = "/api/v1/subscriptions"

// Subscriptions is the subscription namespace of the admin API.
type Subscriptions struct {
	c *Client
}

// Subscriptions returns the subscription namespace.
func (c *Client) Subscriptions() *Subscriptions { return &Subscriptions{c} }

func (s *Subscriptions) List(ctx context.Context, page, size int, filters model.SubscriptionFilter) (model.Page[model.Subscription], error) {
	var pg model.Page[model.Subscription]
	err := s.c.get(ctx, subscriptionsPath, listQuery(page, size, filters), &pg)
	return pg, err
}

func (s *Subscriptions) Get(ctx context.Context, id string) (*model.SubscriptionDetail, error) {
	var d model.SubscriptionDetail
	if err := s.c.get(ctx, subscriptionsPath+"/"+id, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Subscriptions) Cancel(ctx context.Context, id, reason string) error {
	return s.c.post(ctx, subscriptionsPath+"/"+id+"/cancel", map[string]string{"reason": reason}, nil)
}

func (s *Subscriptions) OverridePlan(ctx context.Context, id, plan string) error {
	return s.c.post(ctx, subscriptionsPath+"/"+id+"/plan", map[string]string{"plan": plan}, nil)
}

func (s *Subscriptions) ExtendTrial(ctx context.Context, id string, days int) error {
	return s.c.post(ctx, subscriptionsPath+"/"+id+"/extend-trial", map[string]int{"days": days}, nil)
}
