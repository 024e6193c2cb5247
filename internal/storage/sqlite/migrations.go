package sqlite

import "database/sql"

// schema sets up the database. It runs on startup and is idempotent.
// The transactions table is append-only: triggers reject UPDATE and DELETE.
// Transaction IDs come from ledger_sequence, not from MAX(id), so an ID is
// never handed out twice even if rows were ever removed by hand.
const schema = `
CREATE TABLE IF NOT EXISTS menu_items (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    name_key TEXT NOT NULL UNIQUE,
    unit_price INTEGER NOT NULL CHECK (unit_price > 0)
);

CREATE TABLE IF NOT EXISTS ledger_sequence (
    name TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);

INSERT OR IGNORE INTO ledger_sequence (name, value) VALUES ('transactions', 0);

CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY,
    created_at INTEGER NOT NULL,
    total INTEGER NOT NULL,
    amount_paid INTEGER NOT NULL,
    change_amount INTEGER NOT NULL,
    option_1 INTEGER NOT NULL,
    option_2 INTEGER NOT NULL,
    option_3 INTEGER NOT NULL,
    chosen_option TEXT NOT NULL,
    CHECK (amount_paid >= total)
);

CREATE TABLE IF NOT EXISTS transaction_lines (
    transaction_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    item_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    unit_price INTEGER NOT NULL,
    quantity INTEGER NOT NULL CHECK (quantity >= 1),
    PRIMARY KEY (transaction_id, position),
    FOREIGN KEY (transaction_id) REFERENCES transactions(id)
);

CREATE TABLE IF NOT EXISTS sync_status (
    transaction_id INTEGER PRIMARY KEY,
    state TEXT NOT NULL,
    reason TEXT NOT NULL DEFAULT '',
    attempted_at INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (transaction_id) REFERENCES transactions(id)
);

CREATE TRIGGER IF NOT EXISTS transactions_append_only_update
BEFORE UPDATE ON transactions
BEGIN
    SELECT RAISE(ABORT, 'transactions are append-only');
END;

CREATE TRIGGER IF NOT EXISTS transactions_append_only_delete
BEFORE DELETE ON transactions
BEGIN
    SELECT RAISE(ABORT, 'transactions are append-only');
END;

CREATE INDEX IF NOT EXISTS idx_transaction_lines_transaction_id ON transaction_lines(transaction_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
