package store

import (
	"database/sql"
	"time"
)

// IngestRun represents a single API fetch operation for auditing.
type IngestRun struct {
	ID           int64
	StartedAt    time.Time
	FinishedAt   sql.NullTime
	Report       string // "metar" or "taf"
	Station      string // ICAO code
	RowsWritten  sql.NullInt64
	Success      bool
	ErrorMessage sql.NullString
}

// StartIngestRun creates a new ingest run record and returns it.
func (s *Store) StartIngestRun(report, station string) (*IngestRun, error) {
	run := &IngestRun{
		StartedAt: time.Now().UTC(),
		Report:    report,
		Station:   station,
	}

	result, err := s.db.Exec(`
		INSERT INTO ingest_runs (started_at, report, station, success)
		VALUES (?, ?, ?, FALSE)
	`, run.StartedAt, run.Report, run.Station)
	if err != nil {
		return nil, err
	}

	run.ID, err = result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return run, nil
}

// CompleteIngestRun updates the ingest run with results.
func (s *Store) CompleteIngestRun(run *IngestRun) error {
	if run == nil {
		return nil
	}

	run.FinishedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}

	_, err := s.db.Exec(`
		UPDATE ingest_runs SET
			finished_at = ?,
			rows_written = ?,
			success = ?,
			error_message = ?
		WHERE id = ?
	`, run.FinishedAt, run.RowsWritten, run.Success, run.ErrorMessage, run.ID)
	return err
}

// RecentIngestRuns returns the most recent runs, newest first.
func (s *Store) RecentIngestRuns(limit int) ([]IngestRun, error) {
	rows, err := s.db.Query(`
		SELECT id, started_at, finished_at, report, station, rows_written, success, error_message
		FROM ingest_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []IngestRun
	for rows.Next() {
		var r IngestRun
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Report, &r.Station,
			&r.RowsWritten, &r.Success, &r.ErrorMessage); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
