package api

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/model"
)

const apiKeysPath = "/api/v1/apikeys"

// APIKeys is the API-key namespace of the admin API.
type APIKeys struct {
	c *Client
}

// APIKeys returns the API-key namespace.
func (c *Client) APIKeys() *APIKeys { return &APIKeys{c} }

func (k *APIKeys) List(ctx context.Context, page, size int, filters model.APIKeyFilter) (model.Page[model.APIKey], error) {
	var pg model.Page[model.APIKey]
	err := k.c.get(ctx, apiKeysPath, listQuery(page, size, filters), &pg)
	return pg, err
}

func (k *APIKeys) Get(ctx context.Context, id string) (*model.APIKeyDetail, error) {
	var d model.APIKeyDetail
	if err := k.c.get(ctx, apiKeysPath+"/"+id, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (k *APIKeys) Revoke(ctx context.Context, id string) error {
	return k.c.post(ctx, apiKeysPath+"/"+id+"/revoke", nil, nil)
}

// Regenerate rotates the key and returns the new plaintext token, shown to the
// admin exactly once.
func (k *APIKeys) Regenerate(ctx context.Context, id string) (*model.RegeneratedKey, error) {
	var out model.RegeneratedKey
	if err := k.c.post(ctx, apiKeysPath+"/"+id+"/regenerate", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
