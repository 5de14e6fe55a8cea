package db

import (
	"context"
	"database/sql"
)

// schema contains the DDL for all sandbox tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id               TEXT PRIMARY KEY,
		email            TEXT NOT NULL UNIQUE,
		name             TEXT NOT NULL,
		status           TEXT NOT NULL DEFAULT 'ACTIVE',
		plan             TEXT NOT NULL DEFAULT 'free',
		suspended_reason TEXT NOT NULL DEFAULT '',
		trial_ends_at    TEXT,
		created_at       TEXT NOT NULL,
		last_login_at    TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS servers (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		hostname        TEXT NOT NULL,
		ip_address      TEXT NOT NULL DEFAULT '',
		owner_email     TEXT NOT NULL,
		status          TEXT NOT NULL DEFAULT 'ONLINE',
		agent_version   TEXT NOT NULL DEFAULT '',
		disk_used_bytes INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS collaborators (
		id        TEXT PRIMARY KEY,
		server_id TEXT NOT NULL REFERENCES servers(id) ON DELETE CASCADE,
		email     TEXT NOT NULL,
		role      TEXT NOT NULL DEFAULT 'viewer',
		added_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS subscriptions (
		id                 TEXT PRIMARY KEY,
		user_email         TEXT NOT NULL,
		plan               TEXT NOT NULL,
		status             TEXT NOT NULL DEFAULT 'ACTIVE',
		amount_cents       INTEGER NOT NULL DEFAULT 0,
		currency           TEXT NOT NULL DEFAULT 'USD',
		current_period_end TEXT NOT NULL,
		trial_ends_at      TEXT,
		canceled_reason    TEXT NOT NULL DEFAULT '',
		created_at         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS invoices (
		id           TEXT PRIMARY KEY,
		user_email   TEXT NOT NULL,
		amount_cents INTEGER NOT NULL DEFAULT 0,
		currency     TEXT NOT NULL DEFAULT 'USD',
		status       TEXT NOT NULL DEFAULT 'paid',
		issued_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS api_keys (
		id           TEXT PRIMARY KEY,
		user_email   TEXT NOT NULL,
		label        TEXT NOT NULL DEFAULT '',
		prefix       TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'ACTIVE',
		scopes       TEXT NOT NULL DEFAULT '[]',
		last_used_at TEXT,
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS audit_logs (
		id          TEXT PRIMARY KEY,
		actor_email TEXT NOT NULL,
		action      TEXT NOT NULL,
		target_type TEXT NOT NULL DEFAULT '',
		target_id   TEXT NOT NULL DEFAULT '',
		ip_address  TEXT NOT NULL DEFAULT '',
		metadata    TEXT NOT NULL DEFAULT '{}',
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS templates (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		author_email    TEXT NOT NULL,
		category        TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'PENDING',
		downloads       INTEGER NOT NULL DEFAULT 0,
		description     TEXT NOT NULL DEFAULT '',
		content         TEXT NOT NULL DEFAULT '',
		rejected_reason TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS webhooks (
		id               TEXT PRIMARY KEY,
		user_email       TEXT NOT NULL,
		url              TEXT NOT NULL,
		events           TEXT NOT NULL DEFAULT '[]',
		enabled          INTEGER NOT NULL DEFAULT 1,
		failure_count    INTEGER NOT NULL DEFAULT 0,
		secret_prefix    TEXT NOT NULL DEFAULT '',
		last_delivery_at TEXT,
		created_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS webhook_deliveries (
		id          TEXT PRIMARY KEY,
		webhook_id  TEXT NOT NULL REFERENCES webhooks(id) ON DELETE CASCADE,
		event       TEXT NOT NULL,
		status_code INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS scheduled_backups (
		id             TEXT PRIMARY KEY,
		server_id      TEXT NOT NULL REFERENCES servers(id) ON DELETE CASCADE,
		server_name    TEXT NOT NULL,
		schedule       TEXT NOT NULL,
		enabled        INTEGER NOT NULL DEFAULT 1,
		retention_days INTEGER NOT NULL DEFAULT 7,
		last_run_at    TEXT,
		last_status    TEXT NOT NULL DEFAULT '',
		size_bytes     INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS git_configs (
		id               TEXT PRIMARY KEY,
		server_id        TEXT NOT NULL REFERENCES servers(id) ON DELETE CASCADE,
		server_name      TEXT NOT NULL,
		repo_url         TEXT NOT NULL,
		branch           TEXT NOT NULL DEFAULT 'main',
		auto_sync        INTEGER NOT NULL DEFAULT 0,
		last_sync_at     TEXT,
		last_sync_status TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS invite_codes (
		id         TEXT PRIMARY KEY,
		code       TEXT NOT NULL UNIQUE,
		created_by TEXT NOT NULL,
		max_uses   INTEGER NOT NULL DEFAULT 1,
		uses       INTEGER NOT NULL DEFAULT 0,
		status     TEXT NOT NULL DEFAULT 'ACTIVE',
		expires_at TEXT,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_servers_owner ON servers(owner_email)`,
	`CREATE INDEX IF NOT EXISTS idx_collaborators_server ON collaborators(server_id)`,
	`CREATE INDEX IF NOT EXISTS idx_subscriptions_email ON subscriptions(user_email)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_email ON invoices(user_email)`,
	`CREATE INDEX IF NOT EXISTS idx_api_keys_email ON api_keys(user_email)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_created ON audit_logs(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_deliveries_webhook ON webhook_deliveries(webhook_id)`,
	`CREATE INDEX IF NOT EXISTS idx_backups_server ON scheduled_backups(server_id)`,
	`CREATE INDEX IF NOT EXISTS idx_git_configs_server ON git_configs(server_id)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
