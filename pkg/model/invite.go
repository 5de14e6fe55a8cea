package model

import (
	"net/url"
	"time"
)

// InviteStatus enumerates invite-code states.
type InviteStatus string

const (
	InviteActive    InviteStatus = "ACTIVE"
	InviteRevoked   InviteStatus = "REVOKED"
	InviteExhausted InviteStatus = "EXHAUSTED"
)

// InviteCode is a signup invitation code.
type InviteCode struct {
	ID        string       `json:"id"`
	Code      string       `json:"code"`
	CreatedBy string       `json:"created_by"`
	MaxUses   int          `json:"max_uses"`
	Uses      int          `json:"uses"`
	Status    InviteStatus `json:"status"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// InviteFilter constrains invite-code listings.
type InviteFilter struct {
	Status InviteStatus
}

func (f InviteFilter) Query() url.Values {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	return v
}
