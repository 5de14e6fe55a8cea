package db

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opsdeck/opsdeck/pkg/model"
)

// Fixture is a full sandbox dataset. YAML fixture files use the same
// snake_case keys as the API's JSON payloads.
type Fixture struct {
	Users         []model.UserDetail         `json:"users"`
	Servers       []model.Server             `json:"servers"`
	Collaborators []FixtureCollaborator      `json:"collaborators"`
	Subscriptions []model.SubscriptionDetail `json:"subscriptions"`
	Invoices      []FixtureInvoice           `json:"invoices"`
	APIKeys       []model.APIKeyDetail       `json:"api_keys"`
	AuditLogs     []model.AuditLog           `json:"audit_logs"`
	Templates     []model.TemplateDetail     `json:"templates"`
	Webhooks      []model.WebhookDetail      `json:"webhooks"`
	Deliveries    []FixtureDelivery          `json:"webhook_deliveries"`
	Backups       []model.ScheduledBackup    `json:"backups"`
	GitConfigs    []model.GitConfig          `json:"git_configs"`
	Invites       []model.InviteCode         `json:"invites"`
}

// FixtureCollaborator carries the owning server id the nested model omits.
type FixtureCollaborator struct {
	model.Collaborator
	ServerID string `json:"server_id"`
}

// FixtureInvoice carries the owning user email the nested model omits.
type FixtureInvoice struct {
	model.Invoice
	UserEmail string `json:"user_email"`
}

// FixtureDelivery carries the owning webhook id the nested model omits.
type FixtureDelivery struct {
	model.WebhookDelivery
	WebhookID string `json:"webhook_id"`
}

// LoadFixture reads a YAML fixture file. The YAML is decoded through the
// models' JSON tags so fixture keys match the wire format exactly.
func LoadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	bridge, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("convert fixture %s: %w", path, err)
	}
	var fx Fixture
	if err := json.Unmarshal(bridge, &fx); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	return &fx, nil
}
