package model

import (
	"net/url"
	"time"
)

// UserStatus enumerates account lifecycle states.
type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
	UserPending   UserStatus = "PENDING"
)

// User is a list-row view of an account.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Status      UserStatus `json:"status"`
	Plan        string     `json:"plan"`
	ServerCount int        `json:"server_count"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// UserDetail is the full account view: the list row plus nested collections.
type UserDetail struct {
	User
	SuspendedReason string    `json:"suspended_reason,omitempty"`
	TrialEndsAt     *time.Time `json:"trial_ends_at,omitempty"`
	Servers         []Server   `json:"servers"`
	Invoices        []Invoice  `json:"invoices"`
}

// Invoice is a billing line nested under user and subscription details.
type Invoice struct {
	ID          string    `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	IssuedAt    time.Time `json:"issued_at"`
}

// UserFilter constrains user listings. Empty fields mean "no constraint".
type UserFilter struct {
	Email  string
	Status UserStatus
	Plan   string
}

func (f UserFilter) Query() url.Values {
	v := url.Values{}
	if f.Email != "" {
		v.Set("email", f.Email)
	}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.Plan != "" {
		v.Set("plan", f.Plan)
	}
	return v
}
