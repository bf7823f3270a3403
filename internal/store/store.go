package store

import (
	"database/sql"
)

// Store archives raw API payloads and per-fetch audit records in SQLite.
// The archive is optional; callers hold a nil *Store when archival is
// disabled and must guard their calls.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}
