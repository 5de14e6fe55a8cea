package model

import (
	"net/url"
	"strconv"
	"time"
)

// ScheduledBackup is a recurring backup job attached to a server.
type ScheduledBackup struct {
	ID            string     `json:"id"`
	ServerID      string     `json:"server_id"`
	ServerName    string     `json:"server_name"`
	Schedule      string     `json:"schedule"` // cron expression
	Enabled       bool       `json:"enabled"`
	RetentionDays int        `json:"retention_days"`
	LastRunAt     *time.Time `json:"last_run_at,omitempty"`
	LastStatus    string     `json:"last_status,omitempty"`
	SizeBytes     int64      `json:"size_bytes"`
	CreatedAt     time.Time  `json:"created_at"`
}

// BackupFilter constrains scheduled-backup listings.
type BackupFilter struct {
	Search  string // matches server name
	Enabled *bool
}

func (f BackupFilter) Query() url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set("q", f.Search)
	}
	if f.Enabled != nil {
		v.Set("enabled", strconv.FormatBool(*f.Enabled))
	}
	return v
}
