package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/opsdeck/opsdeck/internal/export"
	"github.com/opsdeck/opsdeck/internal/store"
	"github.com/opsdeck/opsdeck/pkg/model"
)

// newPanes builds the console's resource tabs in display order. size is the
// page size every list fetch uses; exportDir is where audit exports land.
func newPanes(stores *store.Set, size int, exportDir string) []pane {
	return []pane{
		usersPane(stores.Users, size),
		serversPane(stores.Servers, size),
		subscriptionsPane(stores.Subscriptions, size),
		apiKeysPane(stores.APIKeys, size),
		auditPane(stores.Audit, size, exportDir),
		templatesPane(stores.Templates, size),
		webhooksPane(stores.Webhooks, size),
		backupsPane(stores.Backups, size),
		gitConfigsPane(stores.GitConfigs, size),
		invitesPane(stores.Invites, size),
	}
}

func usersPane(s *store.Users, size int) pane {
	return newPane("Users", s.Store, size,
		[]string{"EMAIL", "NAME", "STATUS", "PLAN", "SERVERS", "LAST LOGIN"},
		"email",
		func(u model.User) []string {
			return []string{u.Email, u.Name, string(u.Status), u.Plan,
				strconv.Itoa(u.ServerCount), agePtr(u.LastLoginAt)}
		},
		func(u model.User) string { return u.ID },
		func(q string) model.UserFilter { return model.UserFilter{Email: q} },
		renderUserDetail,
		[]action{
			{key: "s", label: "suspend", needsInput: true, prompt: "Reason",
				run: func(ctx context.Context, id, input string) (string, error) {
					return "", s.Suspend(ctx, id, input)
				}},
			{key: "u", label: "unsuspend",
				run: func(ctx context.Context, id, _ string) (string, error) {
					return "", s.Unsuspend(ctx, id)
				}},
			{key: "P", label: "set plan", needsInput: true, prompt: "Plan",
				run: func(ctx context.Context, id, input string) (string, error) {
					return "", s.OverridePlan(ctx, id, input)
				}},
			{key: "t", label: "extend trial", needsInput: true, prompt: "Days",
				run: func(ctx context.Context, id, input string) (string, error) {
					days, err := strconv.Atoi(strings.TrimSpace(input))
					if err != nil {
						return "", store.ErrDaysPositive
					}
					return "", s.ExtendTrial(ctx, id, days)
				}},
			{key: "D", label: "delete", needsInput: true, prompt: "Type the user id to confirm",
				run: func(ctx context.Context, id, input string) (string, error) {
					if strings.TrimSpace(input) != id {
						return "", fmt.Errorf("confirmation does not match the user id")
					}
					return "", s.Delete(ctx, id)
				}},
		})
}

func serversPane(s *store.Servers, size int) pane {
	return newPane("Servers", s.Store, size,
		[]string{"NAME", "HOSTNAME", "OWNER", "STATUS", "AGENT", "DISK"},
		"name or hostname",
		func(sv model.Server) []string {
			return []string{sv.Name, sv.Hostname, sv.OwnerEmail, string(sv.Status),
				sv.AgentVersion, sizeStr(sv.DiskUsedB)}
		},
		func(sv model.Server) string { return sv.ID },
		func(q string) model.ServerFilter { return model.ServerFilter{Search: q} },
		renderServerDetail,
		[]action{
			{key: "D", label: "delete", needsInput: true, prompt: "Type the server id to confirm",
				run: func(ctx context.Context, id, input string) (string, error) {
					if strings.TrimSpace(input) != id {
						return "", fmt.Errorf("confirmation does not match the server id")
					}
					return "", s.Delete(ctx, id)
				}},
		})
}

func subscriptionsPane(s *store.Subscriptions, size int) pane {
	return newPane("Subscriptions", s.Store, size,
		[]string{"USER", "PLAN", "STATUS", "AMOUNT", "PERIOD END"},
		"user email",
		func(sub model.Subscription) []string {
			return []string{sub.UserEmail, sub.Plan, string(sub.Status),
				money(sub.AmountCents, sub.Currency), age(sub.CurrentPeriodEnd)}
		},
		func(sub model.Subscription) string { return sub.ID },
		func(q string) model.SubscriptionFilter { return model.SubscriptionFilter{UserEmail: q} },
		renderSubscriptionDetail,
		[]action{
			{key: "x", label: "cancel", needsInput: true, prompt: "Reason",
				run: func(ctx context.Context, id, input string) (string, error) {
					return "", s.Cancel(ctx, id, input)
				}},
			{key: "P", label: "set plan", needsInput: true, prompt: "Plan",
				run: func(ctx context.Context, id, input string) (string, error) {
					return "", s.OverridePlan(ctx, id, input)
				}},
			{key: "t", label: "extend trial", needsInput: true, prompt: "Days",
				run: func(ctx context.Context, id, input string) (string, error) {
					days, err := strconv.Atoi(strings.TrimSpace(input))
					if err != nil {
						return "", store.ErrDaysPositive
					}
					return "", s.ExtendTrial(ctx, id, days)
				}},
		})
}

func apiKeysPane(s *store.APIKeys, size int) pane {
	return newPane("API Keys", s.Store, size,
		[]string{"LABEL", "USER", "PREFIX", "STATUS", "LAST USED"},
		"user email",
		func(k model.APIKey) []string {
			return []string{k.Label, k.UserEmail, k.Prefix, string(k.Status), agePtr(k.LastUsedAt)}
		},
		func(k model.APIKey) string { return k.ID },
		func(q string) model.APIKeyFilter { return model.APIKeyFilter{UserEmail: q} },
		renderAPIKeyDetail,
		[]action{
			{key: "R", label: "revoke",
				run: func(ctx context.Context, id, _ string) (string, error) {
					return "", s.Revoke(ctx, id)
				}},
			{key: "G", label: "regenerate",
				run: func(ctx context.Context, id, _ string) (string, error) {
					token, err := s.Regenerate(ctx, id)
					if err != nil {
						return "", err
					}
					return "New token (shown once): " + token, nil
				}},
		})
}

func auditPane(s *store.Audit, size int, exportDir string) pane {
	return newPane("Audit", s.Store, size,
		[]string{"WHEN", "ACTOR", "ACTION", "TARGET", "IP"},
		"actor email",
		func(l model.AuditLog) []string {
			return []string{age(l.CreatedAt), l.ActorEmail, l.Action,
				l.TargetType + "/" + l.TargetID, l.IPAddress}
		},
		func(l model.AuditLog) string { return l.ID },
		func(q string) model.AuditFilter { return model.AuditFilter{ActorEmail: q} },
		renderAuditDetail,
		[]action{
			{key: "e", label: "export csv", global: true,
				run: func(ctx context.Context, _, _ string) (string, error) {
					data, err := s.Export(ctx, model.ExportCSV)
					if err != nil {
						return "", err
					}
					name := "audit-" + time.Now().Format("20060102-150405") + ".csv"
					dest, err := export.FileSink{Dir: exportDir}.Save(ctx, name, data)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("Exported %d bytes to %s", len(data), dest), nil
				}},
		})
}

func templatesPane(s *store.Templates, size int) pane {
	return newPane("Templates", s.Store, size,
		[]string{"NAME", "AUTHOR", "CATEGORY", "STATUS", "DOWNLOADS"},
		"name or description",
		func(t model.Template) []string {
			return []string{t.Name, t.AuthorEmail, t.Category, string(t.Status),
				strconv.Itoa(t.Downloads)}
		},
		func(t model.Template) string { return t.ID },
		func(q string) model.TemplateFilter { return model.TemplateFilter{Search: q} },
		renderTemplateDetail,
		[]action{
			{key: "a", label: "approve",
				run: func(ctx context.Context, id, _ string) (string, error) {
					return "", s.Approve(ctx, id)
				}},
			{key: "x", label: "reject", needsInput: true, prompt: "Reason",
				run: func(ctx context.Context, id, input string) (string, error) {
					return "", s.Reject(ctx, id, input)
				}},
			{key: "D", label: "delete", needsInput: true, prompt: "Type the template id to confirm",
				run: func(ctx context.Context, id, input string) (string, error) {
					if strings.TrimSpace(input) != id {
						return "", fmt.Errorf("confirmation does not match the template id")
					}
					return "", s.Delete(ctx, id)
				}},
		})
}

func webhooksPane(s *store.Webhooks, size int) pane {
	return newPane("Webhooks", s.Store, size,
		[]string{"USER", "URL", "EVENTS", "ENABLED", "FAILURES", "LAST DELIVERY"},
		"user email",
		func(w model.Webhook) []string {
			return []string{w.UserEmail, truncate(w.URL, 40), strconv.Itoa(len(w.Events)),
				onOff(w.Enabled), strconv.Itoa(w.FailureCount), agePtr(w.LastDeliveryAt)}
		},
		func(w model.Webhook) string { return w.ID },
		func(q string) model.WebhookFilter { return model.WebhookFilter{UserEmail: q} },
		renderWebhookDetail,
		[]action{
			{key: "e", label: "enable",
				run: func(ctx context.Context, id, _ string) (string, error) {
					return "", s.SetEnabled(ctx, id, true)
				}},
			{key: "x", label: "disable",
				run: func(ctx context.Context, id, _ string) (string, error) {
					return "", s.SetEnabled(ctx, id, false)
				}},
			{key: "D", label: "delete", needsInput: true, prompt: "Type the webhook id to confirm",
				run: func(ctx context.Context, id, input string) (string, error) {
					if strings.TrimSpace(input) != id {
						return "", fmt.Errorf("confirmation does not match the webhook id")
					}
					return "", s.Delete(ctx, id)
				}},
		})
}

func backupsPane(s *store.Backups, size int) pane {
	return newPane("Backups", s.Store, size,
		[]string{"SERVER", "SCHEDULE", "ENABLED", "RETENTION", "LAST RUN", "STATUS", "SIZE"},
		"server name",
		func(b model.ScheduledBackup) []string {
			return []string{b.ServerName, b.Schedule, onOff(b.Enabled),
				fmt.Sprintf("%dd", b.RetentionDays), agePtr(b.LastRunAt), b.LastStatus,
				sizeStr(b.SizeBytes)}
		},
		func(b model.ScheduledBackup) string { return b.ID },
		func(q string) model.BackupFilter { return model.BackupFilter{Search: q} },
		renderBackupDetail,
		[]action{
			{key: "e", label: "enable",
				run: func(ctx context.Context, id, _ string) (string, error) {
					return "", s.SetEnabled(ctx, id, true)
				}},
			{key: "x", label: "disable",
				run: func(ctx context.Context, id, _ string) (string, error) {
					return "", s.SetEnabled(ctx, id, false)
				}},
			{key: "r", label: "run now",
				run: func(ctx context.Context, id, _ string) (string, error) {
					return "", s.RunNow(ctx, id)
				}},
			{key: "D", label: "delete", needsInput: true, prompt: "Type the backup id to confirm",
				run: func(ctx context.Context, id, input string) (string, error) {
					if strings.TrimSpace(input) != id {
						return "", fmt.Errorf("confirmation does not match the backup id")
					}
					return "", s.Delete(ctx, id)
				}},
		})
}

func gitConfigsPane(s *store.GitConfigs, size int) pane {
	return newPane("Git Sync", s.Store, size,
		[]string{"SERVER", "REPO", "BRANCH", "AUTO-SYNC", "LAST SYNC", "STATUS"},
		"server name or repo",
		func(g model.GitConfig) []string {
			return []string{g.ServerName, truncate(g.RepoURL, 40), g.Branch,
				onOff(g.AutoSync), agePtr(g.LastSyncAt), g.LastSyncStatus}
		},
		func(g model.GitConfig) string { return g.ID },
		func(q string) model.GitConfigFilter { return model.GitConfigFilter{Search: q} },
		renderGitConfigDetail,
		[]action{
			{key: "a", label: "auto-sync on",
				run: func(ctx context.Context, id, _ string) (string, error) {
					return "", s.SetAutoSync(ctx, id, true)
				}},
			{key: "x", label: "auto-sync off",
				run: func(ctx context.Context, id, _ string) (string, error) {
					return "", s.SetAutoSync(ctx, id, false)
				}},
			{key: "D", label: "delete", needsInput: true, prompt: "Type the config id to confirm",
				run: func(ctx context.Context, id, input string) (string, error) {
					if strings.TrimSpace(input) != id {
						return "", fmt.Errorf("confirmation does not match the config id")
					}
					return "", s.Delete(ctx, id)
				}},
		})
}

func invitesPane(s *store.Invites, size int) pane {
	return newPane("Invites", s.Store, size,
		[]string{"CODE", "CREATED BY", "USES", "STATUS", "EXPIRES"},
		"status",
		func(i model.InviteCode) []string {
			return []string{i.Code, i.CreatedBy,
				fmt.Sprintf("%d/%d", i.Uses, i.MaxUses), string(i.Status), agePtr(i.ExpiresAt)}
		},
		func(i model.InviteCode) string { return i.ID },
		func(q string) model.InviteFilter {
			return model.InviteFilter{Status: model.InviteStatus(strings.ToUpper(q))}
		},
		renderInviteDetail,
		[]action{
			{key: "c", label: "create", global: true, needsInput: true,
				prompt: "max uses,days (e.g. 5,30)",
				run: func(ctx context.Context, _, input string) (string, error) {
					maxUses, days, err := parseInviteSpec(input)
					if err != nil {
						return "", err
					}
					inv, err := s.Create(ctx, maxUses, days)
					if err != nil {
						return "", err
					}
					return "Created invite code " + inv.Code, nil
				}},
			{key: "R", label: "revoke",
				run: func(ctx context.Context, id, _ string) (string, error) {
					return "", s.Revoke(ctx, id)
				}},
		})
}

// parseInviteSpec parses "maxUses,days"; days may be omitted for the default
// 30-day expiry.
func parseInviteSpec(input string) (maxUses, days int, err error) {
	parts := strings.SplitN(strings.TrimSpace(input), ",", 2)
	maxUses, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("max uses must be an integer")
	}
	days = 30
	if len(parts) == 2 {
		days, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, fmt.Errorf("days must be an integer")
		}
	}
	return maxUses, days, nil
}
