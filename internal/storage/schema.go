// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for habits, entries, moods, and health_samples.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS habits (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE COLLATE NOCASE,
		color TEXT,
		icon TEXT,
		style TEXT NOT NULL DEFAULT 'occurrence',
		unit TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		habit_id TEXT NOT NULL,
		sentiment INTEGER NOT NULL,
		value REAL,
		notes TEXT,
		tags TEXT,
		logged_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS moods (
		id TEXT PRIMARY KEY,
		sentiment INTEGER NOT NULL,
		notes TEXT,
		recorded_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS health_samples (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		value REAL NOT NULL,
		unit TEXT NOT NULL,
		recorded_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_entries_habit ON entries(habit_id);
	CREATE INDEX IF NOT EXISTS idx_entries_logged ON entries(logged_at DESC);
	CREATE INDEX IF NOT EXISTS idx_moods_recorded ON moods(recorded_at DESC);
	CREATE INDEX IF NOT EXISTS idx_health_kind_recorded ON health_samples(kind, recorded_at DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
