// ABOUTME: Database schema definitions
// ABOUTME: SQL for the feedings table and indexes
package db

const schema = `
CREATE TABLE IF NOT EXISTS feedings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    occurred_at DATETIME NOT NULL,
    volume_ml INTEGER NOT NULL,
    feed_type TEXT NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    recorded_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_feedings_occurred_at ON feedings(occurred_at);
`
