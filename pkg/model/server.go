package model

import (
	"net/url"
	"time"
)

// ServerStatus enumerates managed-server states.
type ServerStatus string

const (
	ServerOnline       ServerStatus = "ONLINE"
	ServerOffline      ServerStatus = "OFFLINE"
	ServerProvisioning ServerStatus = "PROVISIONING"
	ServerSuspended    ServerStatus = "SUSPENDED"
)

// Server is a managed server as shown in list views.
type Server struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Hostname     string       `json:"hostname"`
	IPAddress    string       `json:"ip_address"`
	OwnerEmail   string       `json:"owner_email"`
	Status       ServerStatus `json:"status"`
	AgentVersion string       `json:"agent_version"`
	DiskUsedB    int64        `json:"disk_used_bytes"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ServerDetail adds the collections nested under a server.
type ServerDetail struct {
	Server
	Collaborators []Collaborator `json:"collaborators"`
	GitConfig     *GitConfig     `json:"git_config,omitempty"`
	Backups       []ScheduledBackup `json:"backups"`
}

// Collaborator is a user granted access to someone else's server.
type Collaborator struct {
	ID      string    `json:"id"`
	Email   string    `json:"email"`
	Role    string    `json:"role"`
	AddedAt time.Time `json:"added_at"`
}

// CollaboratorFilter constrains collaborator listings within one server.
type CollaboratorFilter struct {
	Role string
}

func (f CollaboratorFilter) Query() url.Values {
	v := url.Values{}
	if f.Role != "" {
		v.Set("role", f.Role)
	}
	return v
}

// ServerFilter constrains server listings.
type ServerFilter struct {
	Search     string // matches name or hostname
	OwnerEmail string
	Status     ServerStatus
}

func (f ServerFilter) Query() url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set("q", f.Search)
	}
	if f.OwnerEmail != "" {
		v.Set("owner", f.OwnerEmail)
	}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	return v
}
