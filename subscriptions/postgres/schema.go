package postgres

import (
	"context"
	"fmt"
)

const ddl = `
-- Tracked subscriptions
CREATE TABLE IF NOT EXISTS subscriptions (
    id UUID PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    price NUMERIC(12,2) NOT NULL,
    category VARCHAR(100) NOT NULL DEFAULT 'uncategorized',
    billing_interval VARCHAR(10) NOT NULL DEFAULT 'month',
    active BOOLEAN NOT NULL DEFAULT true,
    created_at TIMESTAMPTZ DEFAULT NOW(),
    updated_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_subscriptions_name ON subscriptions (LOWER(name));
`

// EnsureSchema creates the subscriptions table if it does not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
