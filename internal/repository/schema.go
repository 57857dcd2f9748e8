package repository

import (
	"context"

	"pizzapos-backend/internal/db"
)

// EnsureSchema creates the tables on startup when they are missing.
// The deployment target is a single managed Postgres, so idempotent
// DDL replaces a migration tool.
func EnsureSchema(ctx context.Context, pg *db.Postgres) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS counters (
			name  TEXT PRIMARY KEY,
			value BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			number                BIGINT PRIMARY KEY,
			order_type            TEXT NOT NULL,
			status                TEXT NOT NULL,
			customer_name         TEXT NOT NULL DEFAULT '',
			customer_phone        TEXT NOT NULL DEFAULT '',
			customer_address      TEXT NOT NULL DEFAULT '',
			customer_neighborhood TEXT NOT NULL DEFAULT '',
			customer_reference    TEXT NOT NULL DEFAULT '',
			subtotal              BIGINT NOT NULL DEFAULT 0,
			discount              BIGINT NOT NULL DEFAULT 0,
			delivery_fee          BIGINT NOT NULL DEFAULT 0,
			total                 BIGINT NOT NULL DEFAULT 0,
			payment_method        TEXT NOT NULL DEFAULT '',
			change_for            BIGINT NOT NULL DEFAULT 0,
			operator              TEXT NOT NULL DEFAULT '',
			driver                TEXT NOT NULL DEFAULT '',
			created_at            TIMESTAMPTZ NOT NULL,
			deadline              TIMESTAMPTZ NOT NULL,
			cancel_reason         TEXT,
			cancel_actor          TEXT,
			canceled_at           TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_number BIGINT NOT NULL REFERENCES orders(number),
			line_id      TEXT NOT NULL,
			name         TEXT NOT NULL,
			category     TEXT NOT NULL DEFAULT '',
			flavors      TEXT[],
			pieces       INT NOT NULL DEFAULT 0,
			unit_price   BIGINT NOT NULL,
			qty          INT NOT NULL,
			observation  TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (order_number, line_id)
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id           BIGSERIAL PRIMARY KEY,
			name         TEXT NOT NULL,
			phone        TEXT NOT NULL UNIQUE,
			address      TEXT NOT NULL DEFAULT '',
			neighborhood TEXT NOT NULL DEFAULT '',
			reference    TEXT NOT NULL DEFAULT '',
			order_count  INT NOT NULL DEFAULT 0,
			total_spent  BIGINT NOT NULL DEFAULT 0,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			deleted_at   TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS employees (
			id         BIGSERIAL PRIMARY KEY,
			name       TEXT NOT NULL,
			role       TEXT NOT NULL DEFAULT '',
			pay_period BIGINT NOT NULL DEFAULT 0,
			is_driver  BOOLEAN NOT NULL DEFAULT false,
			active     BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS blocked_items (
			name       TEXT PRIMARY KEY,
			blocked_by TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			role          TEXT NOT NULL,
			password_hash TEXT,
			is_google     BOOLEAN NOT NULL DEFAULT false,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			deleted_at    TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id               INT PRIMARY KEY,
			business_name    TEXT NOT NULL DEFAULT '',
			business_address TEXT NOT NULL DEFAULT '',
			business_phone   TEXT NOT NULL DEFAULT '',
			receipt_footer   TEXT NOT NULL DEFAULT '',
			store_open       BOOLEAN NOT NULL DEFAULT true,
			enforce_shift    BOOLEAN NOT NULL DEFAULT false,
			delivery_sla_min INT NOT NULL DEFAULT 50,
			pickup_sla_min   INT NOT NULL DEFAULT 30,
			currency_code    TEXT NOT NULL DEFAULT 'BRL',
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range statements {
		if _, err := pg.Pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
