package model

import (
	"net/url"
	"strconv"
	"time"
)

// Webhook is an outbound event subscription as shown in list views.
type Webhook struct {
	ID             string     `json:"id"`
	UserEmail      string     `json:"user_email"`
	URL            string     `json:"url"`
	Events         []string   `json:"events"`
	Enabled        bool       `json:"enabled"`
	FailureCount   int        `json:"failure_count"`
	LastDeliveryAt *time.Time `json:"last_delivery_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// WebhookDetail adds the signing secret prefix and recent delivery summary.
type WebhookDetail struct {
	Webhook
	SecretPrefix     string `json:"secret_prefix"`
	RecentDeliveries []WebhookDelivery `json:"recent_deliveries"`
}

// WebhookDelivery is one delivery attempt in the detail view.
type WebhookDelivery struct {
	ID         string    `json:"id"`
	Event      string    `json:"event"`
	StatusCode int       `json:"status_code"`
	DurationMS int       `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// WebhookFilter constrains webhook listings. Enabled is tri-state: nil means
// "no constraint".
type WebhookFilter struct {
	UserEmail string
	Enabled   *bool
}

func (f WebhookFilter) Query() url.Values {
	v := url.Values{}
	if f.UserEmail != "" {
		v.Set("email", f.UserEmail)
	}
	if f.Enabled != nil {
		v.Set("enabled", strconv.FormatBool(*f.Enabled))
	}
	return v
}
