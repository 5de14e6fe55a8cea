package model

import (
	"net/url"
	"time"
)

// AuditLog records one administrative or user-visible action.
type AuditLog struct {
	ID         string            `json:"id"`
	ActorEmail string            `json:"actor_email"`
	Action     string            `json:"action"`
	TargetType string            `json:"target_type"`
	TargetID   string            `json:"target_id"`
	IPAddress  string            `json:"ip_address"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// ExportFormat selects the audit export encoding.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

// Valid reports whether the format is one the API accepts.
func (f ExportFormat) Valid() bool {
	return f == ExportCSV || f == ExportJSON
}

// AuditFilter constrains audit listings and exports.
type AuditFilter struct {
	ActorEmail string
	Action     string
	TargetType string
	From       time.Time
	To         time.Time
}

func (f AuditFilter) Query() url.Values {
	v := url.Values{}
	if f.ActorEmail != "" {
		v.Set("actor", f.ActorEmail)
	}
	if f.Action != "" {
		v.Set("action", f.Action)
	}
	if f.TargetType != "" {
		v.Set("target_type", f.TargetType)
	}
	if !f.From.IsZero() {
		v.Set("from", f.From.UTC().Format(time.RFC3339))
	}
	if !f.To.IsZero() {
		v.Set("to", f.To.UTC().Format(time.RFC3339))
	}
	return v
}
