package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opsdeck/opsdeck/pkg/model"
)

// detailWriter accumulates the key/value lines a detail pane shows.
type detailWriter struct {
	st Styles
	b  strings.Builder
}

func newDetailWriter(st Styles) *detailWriter {
	return &detailWriter{st: st}
}

func (w *detailWriter) field(label, value string) {
	if value == "" {
		value = "-"
	}
	w.b.WriteString(w.st.MutedText.Render(fmt.Sprintf("%-14s", label)))
	w.b.WriteString(" ")
	w.b.WriteString(w.st.Text.Render(value))
	w.b.WriteString("\n")
}

func (w *detailWriter) status(label, value string) {
	w.b.WriteString(w.st.MutedText.Render(fmt.Sprintf("%-14s", label)))
	w.b.WriteString(" ")
	w.b.WriteString(w.st.StatusStyle(value).Render(value))
	w.b.WriteString("\n")
}

func (w *detailWriter) section(title string) {
	w.b.WriteString("\n")
	w.b.WriteString(w.st.Accent.Render(title))
	w.b.WriteString("\n")
}

func (w *detailWriter) line(s string) {
	w.b.WriteString(w.st.Text.Render(s))
	w.b.WriteString("\n")
}

func (w *detailWriter) String() string { return w.b.String() }

func renderUserDetail(st Styles, d *model.UserDetail) string {
	w := newDetailWriter(st)
	w.field("ID", d.ID)
	w.field("Email", d.Email)
	w.field("Name", d.Name)
	w.status("Status", string(d.Status))
	w.field("Plan", d.Plan)
	w.field("Created", age(d.CreatedAt))
	w.field("Last login", agePtr(d.LastLoginAt))
	if d.SuspendedReason != "" {
		w.field("Suspended", d.SuspendedReason)
	}
	if d.TrialEndsAt != nil {
		w.field("Trial ends", age(*d.TrialEndsAt))
	}

	w.section(fmt.Sprintf("Servers (%d)", len(d.Servers)))
	for _, sv := range d.Servers {
		w.line(fmt.Sprintf("  %s  %s  %s", sv.Name, sv.Hostname, sv.Status))
	}

	w.section(fmt.Sprintf("Invoices (%d)", len(d.Invoices)))
	for _, inv := range d.Invoices {
		w.line(fmt.Sprintf("  %s  %s  %s  %s",
			inv.ID, money(inv.AmountCents, inv.Currency), inv.Status, age(inv.IssuedAt)))
	}
	return w.String()
}

func renderServerDetail(st Styles, d *model.ServerDetail) string {
	w := newDetailWriter(st)
	w.field("ID", d.ID)
	w.field("Name", d.Name)
	w.field("Hostname", d.Hostname)
	w.field("IP", d.IPAddress)
	w.field("Owner", d.OwnerEmail)
	w.status("Status", string(d.Status))
	w.field("Agent", d.AgentVersion)
	w.field("Disk used", sizeStr(d.DiskUsedB))
	w.field("Created", age(d.CreatedAt))

	w.section(fmt.Sprintf("Collaborators (%d)", len(d.Collaborators)))
	for _, c := range d.Collaborators {
		w.line(fmt.Sprintf("  %s  %s  added %s", c.Email, c.Role, age(c.AddedAt)))
	}

	if d.GitConfig != nil {
		w.section("Git sync")
		w.line(fmt.Sprintf("  %s (%s)  auto-sync %s  last %s %s",
			d.GitConfig.RepoURL, d.GitConfig.Branch, onOff(d.GitConfig.AutoSync),
			agePtr(d.GitConfig.LastSyncAt), d.GitConfig.LastSyncStatus))
	}

	w.section(fmt.Sprintf("Backups (%d)", len(d.Backups)))
	for _, b := range d.Backups {
		w.line(fmt.Sprintf("  %s  %s  last %s %s",
			b.Schedule, onOff(b.Enabled), agePtr(b.LastRunAt), b.LastStatus))
	}
	return w.String()
}

func renderSubscriptionDetail(st Styles, d *model.SubscriptionDetail) string {
	w := newDetailWriter(st)
	w.field("ID", d.ID)
	w.field("User", d.UserEmail)
	w.field("Plan", d.Plan)
	w.status("Status", string(d.Status))
	w.field("Amount", money(d.AmountCents, d.Currency))
	w.field("Period end", age(d.CurrentPeriodEnd))
	if d.TrialEndsAt != nil {
		w.field("Trial ends", age(*d.TrialEndsAt))
	}
	if d.CanceledReason != "" {
		w.field("Canceled", d.CanceledReason)
	}

	w.section(fmt.Sprintf("Invoices (%d)", len(d.Invoices)))
	for _, inv := range d.Invoices {
		w.line(fmt.Sprintf("  %s  %s  %s  %s",
			inv.ID, money(inv.AmountCents, inv.Currency), inv.Status, age(inv.IssuedAt)))
	}
	return w.String()
}

func renderAPIKeyDetail(st Styles, d *model.APIKeyDetail) string {
	w := newDetailWriter(st)
	w.field("ID", d.ID)
	w.field("Label", d.Label)
	w.field("User", d.UserEmail)
	w.field("Prefix", d.Prefix)
	w.status("Status", string(d.Status))
	w.field("Last used", agePtr(d.LastUsedAt))
	w.field("Created", age(d.CreatedAt))
	w.field("Scopes", strings.Join(d.Scopes, ", "))
	return w.String()
}

func renderAuditDetail(st Styles, d *model.AuditLog) string {
	w := newDetailWriter(st)
	w.field("ID", d.ID)
	w.field("Actor", d.ActorEmail)
	w.field("Action", d.Action)
	w.field("Target", d.TargetType+"/"+d.TargetID)
	w.field("IP", d.IPAddress)
	w.field("When", d.CreatedAt.Format("2006-01-02 15:04:05 MST"))

	if len(d.Metadata) > 0 {
		w.section("Metadata")
		keys := make([]string, 0, len(d.Metadata))
		for k := range d.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			w.line(fmt.Sprintf("  %s: %s", k, d.Metadata[k]))
		}
	}
	return w.String()
}

func renderTemplateDetail(st Styles, d *model.TemplateDetail) string {
	w := newDetailWriter(st)
	w.field("ID", d.ID)
	w.field("Name", d.Name)
	w.field("Author", d.AuthorEmail)
	w.field("Category", d.Category)
	w.status("Status", string(d.Status))
	w.field("Downloads", fmt.Sprint(d.Downloads))
	if d.RejectedReason != "" {
		w.field("Rejected", d.RejectedReason)
	}
	w.field("Description", d.Description)

	w.section("Content")
	for _, line := range strings.Split(strings.TrimRight(d.Content, "\n"), "\n") {
		w.line("  " + line)
	}
	return w.String()
}

func renderWebhookDetail(st Styles, d *model.WebhookDetail) string {
	w := newDetailWriter(st)
	w.field("ID", d.ID)
	w.field("User", d.UserEmail)
	w.field("URL", d.URL)
	w.field("Events", strings.Join(d.Events, ", "))
	w.field("Enabled", onOff(d.Enabled))
	w.field("Failures", fmt.Sprint(d.FailureCount))
	w.field("Secret", d.SecretPrefix+"…")
	w.field("Last delivery", agePtr(d.LastDeliveryAt))

	w.section(fmt.Sprintf("Recent deliveries (%d)", len(d.RecentDeliveries)))
	for _, del := range d.RecentDeliveries {
		w.line(fmt.Sprintf("  %s  %s  %d  %dms  %s",
			del.ID, del.Event, del.StatusCode, del.DurationMS, age(del.CreatedAt)))
	}
	return w.String()
}

func renderBackupDetail(st Styles, d *model.ScheduledBackup) string {
	w := newDetailWriter(st)
	w.field("ID", d.ID)
	w.field("Server", d.ServerName)
	w.field("Schedule", d.Schedule)
	w.field("Enabled", onOff(d.Enabled))
	w.field("Retention", fmt.Sprintf("%d days", d.RetentionDays))
	w.field("Last run", agePtr(d.LastRunAt))
	w.status("Last status", d.LastStatus)
	w.field("Size", sizeStr(d.SizeBytes))
	w.field("Created", age(d.CreatedAt))
	return w.String()
}

func renderGitConfigDetail(st Styles, d *model.GitConfig) string {
	w := newDetailWriter(st)
	w.field("ID", d.ID)
	w.field("Server", d.ServerName)
	w.field("Repo", d.RepoURL)
	w.field("Branch", d.Branch)
	w.field("Auto-sync", onOff(d.AutoSync))
	w.field("Last sync", agePtr(d.LastSyncAt))
	w.status("Sync status", d.LastSyncStatus)
	w.field("Created", age(d.CreatedAt))
	return w.String()
}

func renderInviteDetail(st Styles, d *model.InviteCode) string {
	w := newDetailWriter(st)
	w.field("ID", d.ID)
	w.field("Code", d.Code)
	w.field("Created by", d.CreatedBy)
	w.field("Uses", fmt.Sprintf("%d of %d", d.Uses, d.MaxUses))
	w.status("Status", string(d.Status))
	w.field("Expires", agePtr(d.ExpiresAt))
	w.field("Created", age(d.CreatedAt))
	return w.String()
}
