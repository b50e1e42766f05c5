package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/ayusman/mudra/internal/touch"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Recording represents a captured pointer sample stream stored for
// deterministic replay.
type Recording struct {
	ID        string
	Name      string
	Samples   int
	CreatedAt time.Time
}

// RecordingRepository provides CRUD operations for recordings.
type RecordingRepository struct {
	db *sql.DB
}

// Recordings returns the recording repository for this store.
func (s *Store) Recordings() *RecordingRepository {
	return &RecordingRepository{db: s.db}
}

// Create inserts a new recording into the database.
func (r *RecordingRepository) Create(rec *Recording) error {
	rec.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO recordings (id, name, samples, created_at) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Samples, rec.CreatedAt,
	)
	return err
}

// GetByID retrieves a recording by its ID.
func (r *RecordingRepository) GetByID(id string) (*Recording, error) {
	rec := &Recording{}

	err := r.db.QueryRow(
		`SELECT id, name, samples, created_at FROM recordings WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.Name, &rec.Samples, &rec.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return rec, nil
}

// List retrieves all recordings, newest first.
func (r *RecordingRepository) List() ([]*Recording, error) {
	rows, err := r.db.Query(
		`SELECT id, name, samples, created_at FROM recordings ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recordings []*Recording
	for rows.Next() {
		rec := &Recording{}
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Samples, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recordings = append(recordings, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recordings, nil
}

// Delete removes a recording and its samples by ID.
func (r *RecordingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM recordings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// AddSamples appends the samples of a recording in a single transaction
// and updates the sample count on the recording row.
func (r *RecordingRepository) AddSamples(recordingID string, samples []touch.Sample) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO recording_samples (recording_id, seq, x, y, timestamp, phase, pressure, pointer_kind, contact)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, s := range samples {
		_, err := stmt.Exec(recordingID, i, s.Position.X, s.Position.Y,
			s.Timestamp, int(s.Phase), s.Pressure, int(s.Kind), s.Contact)
		if err != nil {
			return err
		}
	}

	// Update sample count on the recording
	_, err = tx.Exec(`UPDATE recordings SET samples = ? WHERE id = ?`, len(samples), recordingID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetSamples retrieves a recording's samples in sequence order.
func (r *RecordingRepository) GetSamples(recordingID string) ([]touch.Sample, error) {
	rows, err := r.db.Query(
		`SELECT x, y, timestamp, phase, pressure, pointer_kind, contact
		 FROM recording_samples
		 WHERE recording_id = ?
		 ORDER BY seq`,
		recordingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []touch.Sample
	for rows.Next() {
		var s touch.Sample
		var phase, kind int
		if err := rows.Scan(&s.Position.X, &s.Position.Y, &s.Timestamp, &phase,
			&s.Pressure, &kind, &s.Contact); err != nil {
			return nil, err
		}
		s.Phase = touch.Phase(phase)
		s.Kind = touch.PointerKind(kind)
		samples = append(samples, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}
