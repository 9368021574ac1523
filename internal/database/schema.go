package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema holds the idempotent DDL applied at startup. Statements run in
// order inside a single transaction.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		color       TEXT NOT NULL DEFAULT '#3B82F6',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS events (
		id                UUID PRIMARY KEY,
		title             TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		short_description TEXT NOT NULL DEFAULT '',
		image_url         TEXT NOT NULL DEFAULT '',
		date              DATE NOT NULL,
		time              TEXT NOT NULL DEFAULT '',
		venue             TEXT NOT NULL,
		location          TEXT NOT NULL DEFAULT '',
		category_id       UUID REFERENCES categories(id),
		total_tickets     INTEGER NOT NULL CHECK (total_tickets > 0),
		available_tickets INTEGER NOT NULL CHECK (available_tickets >= 0 AND available_tickets <= total_tickets),
		price             NUMERIC(10,2) NOT NULL DEFAULT 0,
		is_featured       BOOLEAN NOT NULL DEFAULT FALSE,
		is_trending       BOOLEAN NOT NULL DEFAULT FALSE,
		is_upcoming       BOOLEAN NOT NULL DEFAULT FALSE,
		priority_order    INTEGER NOT NULL DEFAULT 0,
		show_in_hero      BOOLEAN NOT NULL DEFAULT FALSE,
		status            TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id                UUID PRIMARY KEY,
		event_id          UUID NOT NULL REFERENCES events(id),
		user_name         TEXT NOT NULL,
		user_email        TEXT NOT NULL,
		user_phone        TEXT NOT NULL,
		tickets_booked    INTEGER NOT NULL CHECK (tickets_booked > 0),
		total_amount      NUMERIC(10,2) NOT NULL,
		booking_reference TEXT NOT NULL UNIQUE,
		status            TEXT NOT NULL DEFAULT 'confirmed' CHECK (status IN ('confirmed', 'cancelled')),
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS discounts (
		id                  UUID PRIMARY KEY,
		shop_name           TEXT NOT NULL,
		shop_category       TEXT NOT NULL,
		discount_title      TEXT NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		discount_percentage INTEGER NOT NULL DEFAULT 0 CHECK (discount_percentage BETWEEN 0 AND 100),
		original_price      NUMERIC(10,2) NOT NULL DEFAULT 0,
		discounted_price    NUMERIC(10,2) NOT NULL DEFAULT 0,
		image_url           TEXT NOT NULL DEFAULT '',
		shop_location       TEXT NOT NULL DEFAULT '',
		shop_address        TEXT NOT NULL DEFAULT '',
		contact_number      TEXT NOT NULL DEFAULT '',
		website_url         TEXT NOT NULL DEFAULT '',
		valid_from          DATE,
		valid_until         DATE,
		terms_conditions    TEXT NOT NULL DEFAULT '',
		is_featured         BOOLEAN NOT NULL DEFAULT FALSE,
		priority_order      INTEGER NOT NULL DEFAULT 0,
		is_active           BOOLEAN NOT NULL DEFAULT TRUE,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS admin_users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'admin',
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		last_login    TIMESTAMPTZ,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_events_status_date ON events (status, date)`,
	`CREATE INDEX IF NOT EXISTS idx_events_category ON events (category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_event ON bookings (event_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_created ON bookings (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_discounts_active ON discounts (is_active, priority_order DESC)`,
}

// Migrate applies the schema. Safe to run on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, stmt := range schema {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}
