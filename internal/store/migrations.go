package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// SchemaVersion returns the recorded schema version.
func (db *DB) SchemaVersion() (int, error) {
	var v int
	err := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	return v, err
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			start_at    TEXT NOT NULL,
			end_at      TEXT NOT NULL,
			kind        TEXT NOT NULL,
			notes       TEXT NOT NULL DEFAULT '',
			frequency   TEXT NOT NULL DEFAULT 'none',
			repeat_days TEXT NOT NULL DEFAULT '',
			until_at    TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS habits (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			weekly_goal INTEGER NOT NULL,
			is_active   BOOLEAN NOT NULL DEFAULT true,
			created_at  TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS habit_logs (
			id           TEXT PRIMARY KEY,
			habit_id     TEXT NOT NULL REFERENCES habits(id),
			performed_at TEXT NOT NULL,
			adherence    REAL NOT NULL,
			notes        TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS moods (
			id        TEXT PRIMARY KEY,
			logged_at TEXT NOT NULL,
			energy    INTEGER,
			stress    INTEGER,
			note      TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS assessments (
			id         TEXT PRIMARY KEY,
			instrument TEXT NOT NULL,
			tier       TEXT NOT NULL,
			taken_at   TEXT NOT NULL,
			retake     BOOLEAN NOT NULL,
			overall    REAL NOT NULL,
			summary    TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS assessment_items (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			assessment_id TEXT NOT NULL REFERENCES assessments(id),
			subscale_id   TEXT NOT NULL,
			item_code     TEXT NOT NULL,
			raw           INTEGER NOT NULL,
			normalized    REAL NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS journal_entries (
			id         TEXT PRIMARY KEY,
			written_at TEXT NOT NULL,
			body       TEXT NOT NULL,
			tags       TEXT NOT NULL DEFAULT '',
			sentiment  INTEGER NOT NULL DEFAULT 0,
			intent     TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS recommendations (
			id           TEXT PRIMARY KEY,
			created_at   TEXT NOT NULL,
			rule         TEXT NOT NULL,
			title        TEXT NOT NULL,
			body         TEXT NOT NULL,
			action_label TEXT NOT NULL,
			scheduled_at TEXT NOT NULL,
			duration_ms  INTEGER NOT NULL,
			status       TEXT NOT NULL DEFAULT 'open'
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_at)`,
		`CREATE INDEX IF NOT EXISTS idx_habit_logs_habit ON habit_logs(habit_id)`,
		`CREATE INDEX IF NOT EXISTS idx_habit_logs_performed ON habit_logs(performed_at)`,
		`CREATE INDEX IF NOT EXISTS idx_moods_logged ON moods(logged_at)`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_instrument ON assessments(instrument, taken_at)`,
		`CREATE INDEX IF NOT EXISTS idx_assessment_items_assessment ON assessment_items(assessment_id)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_written ON journal_entries(written_at)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_status ON recommendations(status)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}

// LatestSchemaVersion is the version Migrate brings a database to.
func LatestSchemaVersion() int {
	return currentSchemaVersion
}
