package store

import (
	"fmt"
)

// migrations are applied in order; PRAGMA user_version records how many ran
var migrations = []string{
	`
CREATE TABLE IF NOT EXISTS tasks (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    status TEXT CHECK (status IN ('PENDENTE', 'EM_ANDAMENTO', 'CONCLUIDO')) NOT NULL DEFAULT 'PENDENTE',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status);`,
}

// RunMigrations applies any pending database migrations
func (db *DB) RunMigrations() error {
	var version int
	if err := db.conn.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.conn.Begin()
		if err != nil {
			return fmt.Errorf("starting transaction: %w", err)
		}

		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", i+1, err)
		}
		// PRAGMA does not take bind parameters
		if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", i+1, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", i+1, err)
		}
	}

	return nil
}
