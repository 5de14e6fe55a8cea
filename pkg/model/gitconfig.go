package model

import (
	"net/url"
	"strconv"
	"time"
)

// GitConfig is a git-sync configuration attached to a server.
type GitConfig struct {
	ID             string     `json:"id"`
	ServerID       string     `json:"server_id"`
	ServerName     string     `json:"server_name"`
	RepoURL        string     `json:"repo_url"`
	Branch         string     `json:"branch"`
	AutoSync       bool       `json:"auto_sync"`
	LastSyncAt     *time.Time `json:"last_sync_at,omitempty"`
	LastSyncStatus string     `json:"last_sync_status,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// GitConfigFilter constrains git-sync listings.
type GitConfigFilter struct {
	Search   string // matches server name or repo URL
	AutoSync *bool
}

func (f GitConfigFilter) Query() url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set("q", f.Search)
	}
	if f.AutoSync != nil {
		v.Set("auto_sync", strconv.FormatBool(*f.AutoSync))
	}
	return v
}
