package model

import (
	"net/url"
	"time"
)

// TemplateStatus enumerates moderation states for community templates.
type TemplateStatus string

const (
	TemplatePending  TemplateStatus = "PENDING"
	TemplateApproved TemplateStatus = "APPROVED"
	TemplateRejected TemplateStatus = "REJECTED"
)

// Template is a community configuration template as shown in list views.
type Template struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	AuthorEmail string         `json:"author_email"`
	Category    string         `json:"category"`
	Status      TemplateStatus `json:"status"`
	Downloads   int            `json:"downloads"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TemplateDetail adds the full body and moderation metadata.
type TemplateDetail struct {
	Template
	Description    string `json:"description"`
	Content        string `json:"content"`
	RejectedReason string `json:"rejected_reason,omitempty"`
}

// TemplateFilter constrains template listings.
type TemplateFilter struct {
	Search   string // matches name or description
	Status   TemplateStatus
	Category string
}

func (f TemplateFilter) Query() url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set("q", f.Search)
	}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	return v
}
