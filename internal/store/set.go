package store

import (
	"log/slog"

	"github.com/opsdeck/opsdeck/internal/api"
)

// Set bundles one store per resource type, all sharing a single API client.
// Each store owns an independent slice of state; no two resource types'
// fetches interact.
type Set struct {
	Users         *Users
	Servers       *Servers
	Subscriptions *Subscriptions
	APIKeys       *APIKeys
	Audit         *Audit
	Templates     *Templates
	Webhooks      *Webhooks
	Backups       *Backups
	GitConfigs    *GitConfigs
	Invites       *Invites
}

// NewSet creates a full store set for the console.
func NewSet(c *api.Client, logger *slog.Logger) *Set {
	return &Set{
		Users:         NewUsers(c, logger),
		Servers:       NewServers(c, logger),
		Subscriptions: NewSubscriptions(c, logger),
		APIKeys:       NewAPIKeys(c, logger),
		Audit:         NewAudit(c, logger),
		Templates:     NewTemplates(c, logger),
		Webhooks:      NewWebhooks(c, logger),
		Backups:       NewBackups(c, logger),
		GitConfigs:    NewGitConfigs(c, logger),
		Invites:       NewInvites(c, logger),
	}
}

// Reset returns every store to its initial state, used when leaving the
// console entirely.
func (s *Set) Reset() {
	s.Users.Reset()
	s.Servers.Reset()
	s.Subscriptions.Reset()
	s.APIKeys.Reset()
	s.Audit.Reset()
	s.Templates.Reset()
	s.Webhooks.Reset()
	s.Backups.Reset()
	s.GitConfigs.Reset()
	s.Invites.Reset()
}
