// Package store persists decoded UDF batches in SQLite so captures from many
// power cycles can be queried together.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mcalisterkm/bme-converter/internal/udf"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps the SQLite handle.
type Store struct {
	*sql.DB
}

// Batch identifies one ingested file.
type Batch struct {
	ID          string
	SourceFile  string
	BoardID     string
	RecordCount int
}

// Open opens (or creates) the database at path and applies pending
// migrations. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	s := &Store{db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrateUp() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("store: open migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(s.DB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("store: migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("store: build migrate: %w", err)
	}
	// Not closing m: that would close the underlying DB connection.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("store: migration up failed: %w", err)
	}
	return nil
}

// InsertBatch records one decoded file as a batch, transactionally. It
// returns the generated batch id.
func (s *Store) InsertBatch(sourceFile, boardID string, rows []udf.CanonicalRow) (string, error) {
	batchID := uuid.NewString()

	tx, err := s.Begin()
	if err != nil {
		return "", fmt.Errorf("store: begin batch: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO batches (batch_id, source_file, board_id, record_count) VALUES (?, ?, ?, ?)`,
		batchID, sourceFile, boardID, len(rows),
	); err != nil {
		return "", fmt.Errorf("store: insert batch: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO records (
		batch_id, record_index, sensor_index, sensor_id, time_since_poweron_ms,
		real_time_clock, temperature, pressure, relative_humidity,
		resistance_gassensor, heater_profile_step_index, scanning_enabled,
		scanning_cycle_index, label_tag, error_code
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("store: prepare records: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		scanning := 0
		if r.ScanningModeEnabled {
			scanning = 1
		}
		if _, err := stmt.Exec(
			batchID, i, int(r.SensorIndex), int64(r.SensorID), r.TimeSincePowerOn,
			r.RealTimeClock, float64(r.Temperature), float64(r.Pressure),
			float64(r.RelativeHumidity), float64(r.GasResistance),
			int(r.HeaterProfileStepIndex), scanning,
			int(r.ScanningCycleIndex), int64(r.LabelTag), int(r.ErrorCode),
		); err != nil {
			return "", fmt.Errorf("store: insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit batch: %w", err)
	}
	return batchID, nil
}

// ListBatches returns all ingested batches, newest first.
func (s *Store) ListBatches() ([]Batch, error) {
	rows, err := s.Query(
		`SELECT batch_id, source_file, COALESCE(board_id, ''), record_count
		 FROM batches ORDER BY created_at DESC, batch_id`)
	if err != nil {
		return nil, fmt.Errorf("store: list batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var b Batch
		if err := rows.Scan(&b.ID, &b.SourceFile, &b.BoardID, &b.RecordCount); err != nil {
			return nil, fmt.Errorf("store: scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// CountRecords returns the number of records stored for a batch.
func (s *Store) CountRecords(batchID string) (int, error) {
	var n int
	err := s.QueryRow(`SELECT COUNT(*) FROM records WHERE batch_id = ?`, batchID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("store: count records: %w", err)
	}
	return n, nil
}
