package sqlite

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    shop_name TEXT NOT NULL,
    shopkeeper_name TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'active',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS inventory_items (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    name TEXT NOT NULL,
    unit TEXT NOT NULL,
    quantity_on_hand TEXT NOT NULL,
    cost_price TEXT NOT NULL,
    selling_price TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    UNIQUE (owner_id, name COLLATE NOCASE)
);

CREATE TABLE IF NOT EXISTS bill_counters (
    owner_id TEXT PRIMARY KEY,
    last_number INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    cart_id TEXT NOT NULL UNIQUE,
    bill_number INTEGER NOT NULL,
    total_amount TEXT NOT NULL,
    total_cost TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    UNIQUE (owner_id, bill_number)
);

CREATE TABLE IF NOT EXISTS bill_items (
    id TEXT PRIMARY KEY,
    bill_id TEXT NOT NULL,
    inventory_id TEXT,
    item_name TEXT NOT NULL,
    quantity TEXT NOT NULL,
    unit TEXT NOT NULL,
    cost_price TEXT NOT NULL,
    selling_price TEXT NOT NULL,
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS daily_sessions (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('active', 'closed')),
    start_time INTEGER NOT NULL,
    end_time INTEGER,
    total_sales TEXT NOT NULL,
    total_cost TEXT NOT NULL,
    bill_count INTEGER NOT NULL DEFAULT 0
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_daily_sessions_one_active ON daily_sessions(owner_id) WHERE status = 'active';
CREATE INDEX IF NOT EXISTS idx_daily_sessions_owner_end ON daily_sessions(owner_id, end_time);
CREATE INDEX IF NOT EXISTS idx_bills_owner_created ON bills(owner_id, created_at);
CREATE INDEX IF NOT EXISTS idx_inventory_items_owner ON inventory_items(owner_id);
CREATE INDEX IF NOT EXISTS idx_bills_owner ON bills(owner_id, bill_number);
CREATE INDEX IF NOT EXISTS idx_bill_items_bill_id ON bill_items(bill_id);
`

// Migrate crea las tablas si no existen.
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("aplicar esquema sqlite: %w", err)
	}
	return nil
}
