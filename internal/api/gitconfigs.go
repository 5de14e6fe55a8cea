package api

import (
	"context"

	"github.com/opsdeck/opsdeck/pkg/model"
)

const gitConfigsPath = "/api/v1/gitconfigs"

// GitConfigs is the git-sync namespace of the admin API.
type GitConfigs struct {
	c *Client
}

// GitConfigs returns the git-sync namespace.
func (c *Client) GitConfigs() *GitConfigs { return &GitConfigs{c} }

func (g *GitConfigs) List(ctx context.Context, page, size int, filters model.GitConfigFilter) (model.Page[model.GitConfig], error) {
	var pg model.Page[model.GitConfig]
	err := g.c.get(ctx, gitConfigsPath, listQuery(page, size, filters), &pg)
	return pg, err
}

func (g *GitConfigs) Get(ctx context.Context, id string) (*model.GitConfig, error) {
	var d model.GitConfig
	if err := g.c.get(ctx, gitConfigsPath+"/"+id, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (g *GitConfigs) SetAutoSync(ctx context.Context, id string, enabled bool) error {
	return g.c.post(ctx, gitConfigsPath+"/"+id+"/auto-sync", map[string]bool{"enabled": enabled}, nil)
}

func (g *GitConfigs) Delete(ctx context.Context, id string) error {
	return g.c.delete(ctx, gitConfigsPath+"/"+id)
}
