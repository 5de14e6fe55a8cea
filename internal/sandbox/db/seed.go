package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/opsdeck/opsdeck/pkg/model"
)

// Seeded reports whether the database already holds data.
func (s *Store) Seeded(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Seed loads a fixture into the database. Existing rows are kept; seeding an
// already-populated database will fail on unique keys, so callers should
// check Seeded first.
func (s *Store) Seed(ctx context.Context, fx *Fixture) error {
	s.logger.Info("seeding sandbox data",
		"users", len(fx.Users), "servers", len(fx.Servers), "audit_logs", len(fx.AuditLogs))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, u := range fx.Users {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, email, name, status, plan, suspended_reason, trial_ends_at, created_at, last_login_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			u.ID, u.Email, u.Name, string(u.Status), u.Plan, u.SuspendedReason,
			fmtTimePtr(u.TrialEndsAt), fmtTime(u.CreatedAt), fmtTimePtr(u.LastLoginAt)); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}
	for _, sv := range fx.Servers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO servers (id, name, hostname, ip_address, owner_email, status, agent_version, disk_used_bytes, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sv.ID, sv.Name, sv.Hostname, sv.IPAddress, sv.OwnerEmail, string(sv.Status),
			sv.AgentVersion, sv.DiskUsedB, fmtTime(sv.CreatedAt)); err != nil {
			return fmt.Errorf("seed server %s: %w", sv.ID, err)
		}
	}
	for _, c := range fx.Collaborators {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO collaborators (id, server_id, email, role, added_at) VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.ServerID, c.Email, c.Role, fmtTime(c.AddedAt)); err != nil {
			return fmt.Errorf("seed collaborator %s: %w", c.ID, err)
		}
	}
	for _, sub := range fx.Subscriptions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO subscriptions (id, user_email, plan, status, amount_cents, currency, current_period_end, trial_ends_at, canceled_reason, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sub.ID, sub.UserEmail, sub.Plan, string(sub.Status), sub.AmountCents, sub.Currency,
			fmtTime(sub.CurrentPeriodEnd), fmtTimePtr(sub.TrialEndsAt), sub.CanceledReason,
			fmtTime(sub.CreatedAt)); err != nil {
			return fmt.Errorf("seed subscription %s: %w", sub.ID, err)
		}
	}
	for _, inv := range fx.Invoices {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO invoices (id, user_email, amount_cents, currency, status, issued_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			inv.ID, inv.UserEmail, inv.AmountCents, inv.Currency, inv.Status,
			fmtTime(inv.IssuedAt)); err != nil {
			return fmt.Errorf("seed invoice %s: %w", inv.ID, err)
		}
	}
	for _, k := range fx.APIKeys {
		scopes, err := json.Marshal(k.Scopes)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO api_keys (id, user_email, label, prefix, status, scopes, last_used_at, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			k.ID, k.UserEmail, k.Label, k.Prefix, string(k.Status), string(scopes),
			fmtTimePtr(k.LastUsedAt), fmtTime(k.CreatedAt)); err != nil {
			return fmt.Errorf("seed api key %s: %w", k.ID, err)
		}
	}
	for _, a := range fx.AuditLogs {
		metadata, err := json.Marshal(a.Metadata)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO audit_logs (id, actor_email, action, target_type, target_id, ip_address, metadata, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.ActorEmail, a.Action, a.TargetType, a.TargetID, a.IPAddress,
			string(metadata), fmtTime(a.CreatedAt)); err != nil {
			return fmt.Errorf("seed audit log %s: %w", a.ID, err)
		}
	}
	for _, t := range fx.Templates {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO templates (id, name, author_email, category, status, downloads, description, content, rejected_reason, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Name, t.AuthorEmail, t.Category, string(t.Status), t.Downloads,
			t.Description, t.Content, t.RejectedReason, fmtTime(t.CreatedAt)); err != nil {
			return fmt.Errorf("seed template %s: %w", t.ID, err)
		}
	}
	for _, w := range fx.Webhooks {
		events, err := json.Marshal(w.Events)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO webhooks (id, user_email, url, events, enabled, failure_count, secret_prefix, last_delivery_at, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			w.ID, w.UserEmail, w.URL, string(events), boolInt(w.Enabled), w.FailureCount,
			w.SecretPrefix, fmtTimePtr(w.LastDeliveryAt), fmtTime(w.CreatedAt)); err != nil {
			return fmt.Errorf("seed webhook %s: %w", w.ID, err)
		}
	}
	for _, d := range fx.Deliveries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO webhook_deliveries (id, webhook_id, event, status_code, duration_ms, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			d.ID, d.WebhookID, d.Event, d.StatusCode, d.DurationMS, fmtTime(d.CreatedAt)); err != nil {
			return fmt.Errorf("seed delivery %s: %w", d.ID, err)
		}
	}
	for _, b := range fx.Backups {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO scheduled_backups (id, server_id, server_name, schedule, enabled, retention_days, last_run_at, last_status, size_bytes, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.ServerID, b.ServerName, b.Schedule, boolInt(b.Enabled), b.RetentionDays,
			fmtTimePtr(b.LastRunAt), b.LastStatus, b.SizeBytes, fmtTime(b.CreatedAt)); err != nil {
			return fmt.Errorf("seed backup %s: %w", b.ID, err)
		}
	}
	for _, g := range fx.GitConfigs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO git_configs (id, server_id, server_name, repo_url, branch, auto_sync, last_sync_at, last_sync_status, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID, g.ServerID, g.ServerName, g.RepoURL, g.Branch, boolInt(g.AutoSync),
			fmtTimePtr(g.LastSyncAt), g.LastSyncStatus, fmtTime(g.CreatedAt)); err != nil {
			return fmt.Errorf("seed git config %s: %w", g.ID, err)
		}
	}
	for _, inv := range fx.Invites {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO invite_codes (id, code, created_by, max_uses, uses, status, expires_at, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			inv.ID, inv.Code, inv.CreatedBy, inv.MaxUses, inv.Uses, string(inv.Status),
			fmtTimePtr(inv.ExpiresAt), fmtTime(inv.CreatedAt)); err != nil {
			return fmt.Errorf("seed invite %s: %w", inv.ID, err)
		}
	}

	return tx.Commit()
}

// DefaultFixture generates the built-in demo dataset. It is deterministic so
// tests and demos see stable pages.
func DefaultFixture() *Fixture {
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	fx := &Fixture{}

	names := []string{"Alice Hartmann", "Ben Okafor", "Carla Reyes", "Deniz Aydin", "Elena Vasquez",
		"Felix Braun", "Grace Liu", "Hassan Farouk", "Ines Moreau", "Jonas Lindqvist"}
	plans := []string{"free", "starter", "pro", "business"}

	for i := 0; i < 45; i++ {
		email := fmt.Sprintf("user%02d@example.com", i+1)
		status := model.UserActive
		reason := ""
		switch {
		case i%11 == 7:
			status = model.UserSuspended
			reason = "payment chargeback"
		case i%13 == 5:
			status = model.UserPending
		}
		created := base.AddDate(0, 0, -i*3)
		lastLogin := created.AddDate(0, 0, i%14)
		u := model.UserDetail{
			User: model.User{
				ID:          fmt.Sprintf("usr_%03d", i+1),
				Email:       email,
				Name:        names[i%len(names)],
				Status:      status,
				Plan:        plans[i%len(plans)],
				CreatedAt:   created,
				LastLoginAt: &lastLogin,
			},
			SuspendedReason: reason,
		}
		if u.Plan == "starter" && i%2 == 0 {
			trial := base.AddDate(0, 0, 14-i%10)
			u.TrialEndsAt = &trial
		}
		fx.Users = append(fx.Users, u)
	}

	statuses := []model.ServerStatus{model.ServerOnline, model.ServerOnline, model.ServerOnline,
		model.ServerOffline, model.ServerProvisioning}
	for i := 0; i < 24; i++ {
		owner := fx.Users[i%12].Email
		fx.Servers = append(fx.Servers, model.Server{
			ID:           fmt.Sprintf("srv_%03d", i+1),
			Name:         fmt.Sprintf("web-%02d", i+1),
			Hostname:     fmt.Sprintf("web-%02d.opsdeck.example", i+1),
			IPAddress:    fmt.Sprintf("203.0.113.%d", 10+i),
			OwnerEmail:   owner,
			Status:       statuses[i%len(statuses)],
			AgentVersion: "1.8." + fmt.Sprint(i%4),
			DiskUsedB:    int64(4+i) * 1024 * 1024 * 1024,
			CreatedAt:    base.AddDate(0, 0, -i*5),
		})
	}

	roles := []string{"admin", "editor", "viewer"}
	for i := 0; i < 12; i++ {
		fx.Collaborators = append(fx.Collaborators, FixtureCollaborator{
			Collaborator: model.Collaborator{
				ID:      fmt.Sprintf("col_%03d", i+1),
				Email:   fx.Users[20+i].Email,
				Role:    roles[i%len(roles)],
				AddedAt: base.AddDate(0, 0, -i*2),
			},
			ServerID: fx.Servers[i%6].ID,
		})
	}

	subStatuses := []model.SubscriptionStatus{model.SubscriptionActive, model.SubscriptionActive,
		model.SubscriptionTrialing, model.SubscriptionPastDue, model.SubscriptionCanceled}
	for i := 0; i < 20; i++ {
		plan := plans[1+i%3]
		sub := model.SubscriptionDetail{
			Subscription: model.Subscription{
				ID:               fmt.Sprintf("sub_%03d", i+1),
				UserEmail:        fx.Users[i].Email,
				Plan:             plan,
				Status:           subStatuses[i%len(subStatuses)],
				AmountCents:      int64(900 * (1 + i%3)),
				Currency:         "USD",
				CurrentPeriodEnd: base.AddDate(0, 1, -i),
				CreatedAt:        base.AddDate(0, -1, -i*2),
			},
		}
		if sub.Status == model.SubscriptionTrialing {
			trial := base.AddDate(0, 0, 10)
			sub.TrialEndsAt = &trial
		}
		if sub.Status == model.SubscriptionCanceled {
			sub.CanceledReason = "requested by customer"
		}
		fx.Subscriptions = append(fx.Subscriptions, sub)
	}

	for i := 0; i < 20; i++ {
		for j := 0; j < 2; j++ {
			fx.Invoices = append(fx.Invoices, FixtureInvoice{
				Invoice: model.Invoice{
					ID:          fmt.Sprintf("invc_%03d_%d", i+1, j+1),
					AmountCents: fx.Subscriptions[i].AmountCents,
					Currency:    "USD",
					Status:      "paid",
					IssuedAt:    base.AddDate(0, -j, -i),
				},
				UserEmail: fx.Subscriptions[i].UserEmail,
			})
		}
	}

	for i := 0; i < 15; i++ {
		status := model.APIKeyActive
		if i%5 == 4 {
			status = model.APIKeyRevoked
		}
		lastUsed := base.AddDate(0, 0, -i)
		fx.APIKeys = append(fx.APIKeys, model.APIKeyDetail{
			APIKey: model.APIKey{
				ID:         fmt.Sprintf("key_%03d", i+1),
				UserEmail:  fx.Users[i].Email,
				Label:      fmt.Sprintf("deploy-%02d", i+1),
				Prefix:     fmt.Sprintf("odk_%08x", 0x1a2b00+i),
				Status:     status,
				LastUsedAt: &lastUsed,
				CreatedAt:  base.AddDate(0, 0, -i*7),
			},
			Scopes: []string{"servers:read", "backups:write"}[:1+i%2],
		})
	}

	actions := []string{"user.suspend", "user.login", "server.delete", "apikey.regenerate",
		"template.approve", "webhook.disable", "backup.run"}
	for i := 0; i < 120; i++ {
		fx.AuditLogs = append(fx.AuditLogs, model.AuditLog{
			ID:         fmt.Sprintf("aud_%04d", i+1),
			ActorEmail: fx.Users[i%8].Email,
			Action:     actions[i%len(actions)],
			TargetType: "user",
			TargetID:   fx.Users[(i+3)%45].ID,
			IPAddress:  fmt.Sprintf("198.51.100.%d", 1+i%50),
			Metadata:   map[string]string{"via": "console"},
			CreatedAt:  base.Add(-time.Duration(i) * 2 * time.Hour),
		})
	}

	categories := []string{"nginx", "postgres", "redis", "monitoring"}
	tmplStatuses := []model.TemplateStatus{model.TemplatePending, model.TemplateApproved,
		model.TemplateApproved, model.TemplateRejected}
	for i := 0; i < 18; i++ {
		t := model.TemplateDetail{
			Template: model.Template{
				ID:          fmt.Sprintf("tpl_%03d", i+1),
				Name:        fmt.Sprintf("%s-hardened-%02d", categories[i%len(categories)], i+1),
				AuthorEmail: fx.Users[i%10].Email,
				Category:    categories[i%len(categories)],
				Status:      tmplStatuses[i%len(tmplStatuses)],
				Downloads:   i * 17,
				CreatedAt:   base.AddDate(0, 0, -i*4),
			},
			Description: "Hardened baseline configuration",
			Content:     "# managed by opsdeck\nworker_processes auto;\n",
		}
		if t.Status == model.TemplateRejected {
			t.RejectedReason = "contains plaintext credentials"
		}
		fx.Templates = append(fx.Templates, t)
	}

	for i := 0; i < 12; i++ {
		lastDelivery := base.Add(-time.Duration(i) * 6 * time.Hour)
		fx.Webhooks = append(fx.Webhooks, model.WebhookDetail{
			Webhook: model.Webhook{
				ID:             fmt.Sprintf("whk_%03d", i+1),
				UserEmail:      fx.Users[i].Email,
				URL:            fmt.Sprintf("https://hooks.example.com/opsdeck/%02d", i+1),
				Events:         []string{"server.status", "backup.completed"},
				Enabled:        i%4 != 3,
				FailureCount:   i % 3,
				LastDeliveryAt: &lastDelivery,
				CreatedAt:      base.AddDate(0, 0, -i*6),
			},
			SecretPrefix: fmt.Sprintf("whsec_%04x", 0xbe00+i),
		})
	}
	for i := 0; i < 16; i++ {
		code := 200
		if i%5 == 2 {
			code = 500
		}
		fx.Deliveries = append(fx.Deliveries, FixtureDelivery{
			WebhookDelivery: model.WebhookDelivery{
				ID:         fmt.Sprintf("dlv_%03d", i+1),
				Event:      "server.status",
				StatusCode: code,
				DurationMS: 40 + i*13,
				CreatedAt:  base.Add(-time.Duration(i) * time.Hour),
			},
			WebhookID: fx.Webhooks[i%4].ID,
		})
	}

	schedules := []string{"0 2 * * *", "30 3 * * *", "0 */6 * * *"}
	for i := 0; i < 14; i++ {
		sv := fx.Servers[i%len(fx.Servers)]
		lastRun := base.Add(-time.Duration(i) * 12 * time.Hour)
		status := "success"
		if i%6 == 5 {
			status = "failed"
		}
		fx.Backups = append(fx.Backups, model.ScheduledBackup{
			ID:            fmt.Sprintf("bak_%03d", i+1),
			ServerID:      sv.ID,
			ServerName:    sv.Name,
			Schedule:      schedules[i%len(schedules)],
			Enabled:       i%7 != 6,
			RetentionDays: 7 * (1 + i%4),
			LastRunAt:     &lastRun,
			LastStatus:    status,
			SizeBytes:     int64(120+i*35) * 1024 * 1024,
			CreatedAt:     base.AddDate(0, 0, -i*8),
		})
	}

	for i := 0; i < 10; i++ {
		sv := fx.Servers[i]
		lastSync := base.Add(-time.Duration(i) * 3 * time.Hour)
		status := "clean"
		if i%4 == 3 {
			status = "merge conflict"
		}
		fx.GitConfigs = append(fx.GitConfigs, model.GitConfig{
			ID:             fmt.Sprintf("git_%03d", i+1),
			ServerID:       sv.ID,
			ServerName:     sv.Name,
			RepoURL:        fmt.Sprintf("git@github.com:acme/%s-config.git", sv.Name),
			Branch:         "main",
			AutoSync:       i%3 != 2,
			LastSyncAt:     &lastSync,
			LastSyncStatus: status,
			CreatedAt:      base.AddDate(0, 0, -i*9),
		})
	}

	inviteStatuses := []model.InviteStatus{model.InviteActive, model.InviteActive,
		model.InviteExhausted, model.InviteRevoked}
	for i := 0; i < 8; i++ {
		expires := base.AddDate(0, 1, i)
		inv := model.InviteCode{
			ID:        fmt.Sprintf("inv_%03d", i+1),
			Code:      fmt.Sprintf("OPSDECK%03d", i+1),
			CreatedBy: "admin@opsdeck.example",
			MaxUses:   5,
			Uses:      i % 6,
			Status:    inviteStatuses[i%len(inviteStatuses)],
			ExpiresAt: &expires,
			CreatedAt: base.AddDate(0, 0, -i*10),
		}
		if inv.Status == model.InviteExhausted {
			inv.Uses = inv.MaxUses
		}
		fx.Invites = append(fx.Invites, inv)
	}

	return fx
}
