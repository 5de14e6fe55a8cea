package store

import (
	"context"
	"log/slog"

	"github.com/opsdeck/opsdeck/internal/api"
	"github.com/opsdeck/opsdeck/pkg/model"
)

// APIKeys is the resource store for API credentials.
type APIKeys struct {
	*Store[model.APIKey, model.APIKeyDetail, model.APIKeyFilter]
	api *api.APIKeys
}

// NewAPIKeys creates the API-key store backed by the given API client.
func NewAPIKeys(c *api.Client, logger *slog.Logger) *APIKeys {
	svc := c.APIKeys()
	return &APIKeys{
		Store: New[model.APIKey, model.APIKeyDetail, model.APIKeyFilter]("api keys", svc, logger),
		api:   svc,
	}
}

func (s *APIKeys) Revoke(ctx context.Context, id string) error {
	return s.Do(ctx, id, "Failed to revoke API key", func(ctx context.Context) error {
		return s.api.Revoke(ctx, id)
	})
}

// Regenerate rotates a key and returns the new plaintext token. The list and
// detail are re-fetched like any other mutation; the token itself is never
// stored.
func (s *APIKeys) Regenerate(ctx context.Context, id string) (string, error) {
	var token string
	err := s.Do(ctx, id, "Failed to regenerate API key", func(ctx context.Context) error {
		out, err := s.api.Regenerate(ctx, id)
		if err != nil {
			return err
		}
		token = out.Token
		return nil
	})
	return token, err
}
