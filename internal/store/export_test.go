package store

import "database/sql"

// SQLiteDB exposes the raw handle so tests can probe schema constraints.
func SQLiteDB(s *SQLiteStore) *sql.DB { return s.db }
