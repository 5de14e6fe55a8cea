package model

import (
	"net/url"
	"time"
)

// SubscriptionStatus enumerates billing states.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionTrialing SubscriptionStatus = "TRIALING"
	SubscriptionPastDue  SubscriptionStatus = "PAST_DUE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
)

// Subscription is a billing subscription as shown in list views.
type Subscription struct {
	ID               string             `json:"id"`
	UserEmail        string             `json:"user_email"`
	Plan             string             `json:"plan"`
	Status           SubscriptionStatus `json:"status"`
	AmountCents      int64              `json:"amount_cents"`
	Currency         string             `json:"currency"`
	CurrentPeriodEnd time.Time          `json:"current_period_end"`
	TrialEndsAt      *time.Time         `json:"trial_ends_at,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
}

// SubscriptionDetail adds the invoice history and cancellation metadata.
type SubscriptionDetail struct {
	Subscription
	CanceledReason string    `json:"canceled_reason,omitempty"`
	Invoices       []Invoice `json:"invoices"`
}

// SubscriptionFilter constrains subscription listings.
type SubscriptionFilter struct {
	UserEmail string
	Status    SubscriptionStatus
	Plan      string
}

func (f SubscriptionFilter) Query() url.Values {
	v := url.Values{}
	if f.UserEmail != "" {
		v.Set("email", f.UserEmail)
	}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.Plan != "" {
		v.Set("plan", f.Plan)
	}
	return v
}
