package model

import (
	"net/url"
	"time"
)

// APIKeyStatus enumerates key lifecycle states.
type APIKeyStatus string

const (
	APIKeyActive  APIKeyStatus = "ACTIVE"
	APIKeyRevoked APIKeyStatus = "REVOKED"
)

// APIKey is an API credential as shown in list views. The secret itself is
// never listed; only its prefix survives creation.
type APIKey struct {
	ID         string       `json:"id"`
	UserEmail  string       `json:"user_email"`
	Label      string       `json:"label"`
	Prefix     string       `json:"prefix"`
	Status     APIKeyStatus `json:"status"`
	LastUsedAt *time.Time   `json:"last_used_at,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// APIKeyDetail currently matches the list row; kept distinct so the detail
// endpoint can grow scopes without breaking list payloads.
type APIKeyDetail struct {
	APIKey
	Scopes []string `json:"scopes"`
}

// RegeneratedKey carries the one-time plaintext token returned by a
// regenerate call.
type RegeneratedKey struct {
	Token string `json:"token"`
}

// APIKeyFilter constrains key listings.
type APIKeyFilter struct {
	UserEmail string
	Status    APIKeyStatus
}

func (f APIKeyFilter) Query() url.Values {
	v := url.Values{}
	if f.UserEmail != "" {
		v.Set("email", f.UserEmail)
	}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	return v
}
