package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/yegors/rwy-assign/pkg/logger"
)

// AssignmentStorage handles storage of runway assignment records
type AssignmentStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewAssignmentStorage creates a new SQLite assignment storage
func NewAssignmentStorage(db *sql.DB, log *logger.Logger) (*AssignmentStorage, error) {
	storage := &AssignmentStorage{
		db:     db,
		logger: log.Named("sqlite-assign"),
	}

	if err := storage.initDB(); err != nil {
		return nil, fmt.Errorf("failed to initialize assignment storage: %w", err)
	}

	return storage, nil
}

// initDB initializes the database tables
func (s *AssignmentStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS assignments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			callsign TEXT NOT NULL,
			icao24 TEXT NOT NULL,
			runway_id TEXT,
			score REAL NOT NULL,
			confidence TEXT NOT NULL,
			dtrack_deg REAL,
			xtrack_nm REAL,
			dist_nm REAL,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			track_deg REAL NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create assignments table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_assignments_callsign ON assignments(callsign)`,
		`CREATE INDEX IF NOT EXISTS idx_assignments_runway ON assignments(runway_id)`,
		`CREATE INDEX IF NOT EXISTS idx_assignments_created_at ON assignments(created_at)`,
	}

	for _, indexSQL := range indexes {
		if _, err = s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create assignment index: %w", err)
		}
	}

	return nil
}

// StoreBatch stores one polling cycle's assignment records in a single
// transaction so a cycle is either fully persisted or not at all.
func (s *AssignmentStorage) StoreBatch(records []*AssignmentRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO assignments
		(callsign, icao24, runway_id, score, confidence, dtrack_deg, xtrack_nm, dist_nm, lat, lon, track_deg, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		_, err := stmt.Exec(
			record.Callsign,
			record.Icao24,
			record.RunwayID,
			record.Score,
			record.Confidence,
			record.DTrackDeg,
			record.XTrackNM,
			record.DistNM,
			record.Lat,
			record.Lon,
			record.TrackDeg,
			record.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assignments: %w", err)
	}

	return nil
}

// GetRecent returns the most recent assignment records across all aircraft
func (s *AssignmentStorage) GetRecent(limit int) ([]*AssignmentRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, callsign, icao24, runway_id, score, confidence, dtrack_deg, xtrack_nm, dist_nm, lat, lon, track_deg, created_at
		FROM assignments
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent assignments: %w", err)
	}
	defer rows.Close()

	return s.scanAssignmentRows(rows)
}

// GetByCallsign returns assignments for a specific aircraft callsign
func (s *AssignmentStorage) GetByCallsign(callsign string, limit int) ([]*AssignmentRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, callsign, icao24, runway_id, score, confidence, dtrack_deg, xtrack_nm, dist_nm, lat, lon, track_deg, created_at
		FROM assignments
		WHERE callsign = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		callsign, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments by callsign: %w", err)
	}
	defer rows.Close()

	return s.scanAssignmentRows(rows)
}

// GetByRunway returns assignments classified to a specific runway direction
func (s *AssignmentStorage) GetByRunway(runwayID string, limit int) ([]*AssignmentRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, callsign, icao24, runway_id, score, confidence, dtrack_deg, xtrack_nm, dist_nm, lat, lon, track_deg, created_at
		FROM assignments
		WHERE runway_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		runwayID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments by runway: %w", err)
	}
	defer rows.Close()

	return s.scanAssignmentRows(rows)
}

// scanAssignmentRows scans database rows into AssignmentRecord structs
func (s *AssignmentStorage) scanAssignmentRows(rows *sql.Rows) ([]*AssignmentRecord, error) {
	var records []*AssignmentRecord
	for rows.Next() {
		var record AssignmentRecord
		var createdAt string
		var runwayID sql.NullString
		var dtrack, xtrack, dist sql.NullFloat64

		if err := rows.Scan(
			&record.ID,
			&record.Callsign,
			&record.Icao24,
			&runwayID,
			&record.Score,
			&record.Confidence,
			&dtrack,
			&xtrack,
			&dist,
			&record.Lat,
			&record.Lon,
			&record.TrackDeg,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}

		var err error
		record.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		if runwayID.Valid {
			record.RunwayID = &runwayID.String
		}
		if dtrack.Valid {
			record.DTrackDeg = &dtrack.Float64
		}
		if xtrack.Valid {
			record.XTrackNM = &xtrack.Float64
		}
		if dist.Valid {
			record.DistNM = &dist.Float64
		}

		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	return records, nil
}
