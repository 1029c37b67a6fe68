package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email VARCHAR(255) NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name VARCHAR(255) NOT NULL,
	role VARCHAR(32) NOT NULL DEFAULT 'user',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS stores (
	id UUID PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	address TEXT NOT NULL,
	phone VARCHAR(64) NOT NULL,
	email VARCHAR(255) NOT NULL,
	longitude DOUBLE PRECISION,
	latitude DOUBLE PRECISION,
	owner_id UUID NOT NULL REFERENCES users (id),
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS stores_owner_idx ON stores (owner_id) WHERE is_active;

CREATE TABLE IF NOT EXISTS medicines (
	id UUID PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	generic_name VARCHAR(255),
	brand VARCHAR(255),
	price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
	quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	category VARCHAR(255) NOT NULL,
	description TEXT,
	in_stock BOOLEAN NOT NULL DEFAULT TRUE,
	store_id UUID NOT NULL REFERENCES stores (id) ON DELETE CASCADE,
	expiry_date TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS medicines_store_idx ON medicines (store_id, created_at DESC);
CREATE INDEX IF NOT EXISTS medicines_in_stock_idx ON medicines (in_stock, quantity);
`

// EnsureSchema creates the tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}
