package bench

import "database/sql"

// recreateSchema drops all tables and recreates them.
func recreateSchema(db *sql.DB) error {
	stmts := []string{
		`PRAGMA journal_mode = WAL`,

		`DROP TABLE IF EXISTS blobs`,
		`DROP TABLE IF EXISTS users`,

		`CREATE TABLE users (
			id INTEGER PRIMARY KEY NOT NULL,
			created INTEGER NOT NULL,
			email TEXT NOT NULL,
			active INTEGER NOT NULL
		)`,
		`CREATE INDEX users_created ON users(created)`,

		`CREATE TABLE blobs (
			id INTEGER PRIMARY KEY NOT NULL,
			created INTEGER NOT NULL,
			data BLOB NOT NULL
		)`,
		`CREATE INDEX blobs_created ON blobs(created)`,
	}

	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}

	return nil
}
