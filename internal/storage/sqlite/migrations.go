package sqlite

import "database/sql"

// schema sets up the database. It runs on startup and is idempotent.
// Amounts are decimal strings so no precision is lost. Assignment rows keep
// their position because a person may appear on an item more than once.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    default_currency TEXT NOT NULL DEFAULT 'USD',
    locale TEXT NOT NULL DEFAULT 'en-GB',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS people (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    name TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    name_original TEXT NOT NULL,
    name_english TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL DEFAULT '',
    time TEXT NOT NULL DEFAULT '',
    currency TEXT NOT NULL,
    target_currency TEXT NOT NULL DEFAULT '',
    sub_total TEXT NOT NULL,
    grand_total TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bill_items (
    bill_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    id TEXT NOT NULL,
    name_original TEXT NOT NULL,
    name_english TEXT NOT NULL DEFAULT '',
    amount TEXT NOT NULL,
    PRIMARY KEY (bill_id, position),
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS item_people (
    bill_id TEXT NOT NULL,
    item_position INTEGER NOT NULL,
    position INTEGER NOT NULL,
    person_id TEXT NOT NULL,
    person_name TEXT NOT NULL,
    PRIMARY KEY (bill_id, item_position, position),
    FOREIGN KEY (bill_id, item_position) REFERENCES bill_items(bill_id, position) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS adjustments (
    bill_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    id TEXT NOT NULL,
    tracking_id TEXT NOT NULL,
    name_original TEXT NOT NULL,
    name_english TEXT NOT NULL DEFAULT '',
    amount TEXT NOT NULL,
    PRIMARY KEY (bill_id, position),
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_people_owner_name ON people(owner_id, name COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS idx_bills_owner_date ON bills(owner_id, date);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
