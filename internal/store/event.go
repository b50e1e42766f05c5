package store

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Event represents one entry in the recognized-gesture event log.
type Event struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	State     string          `json:"state"`
	Reason    string          `json:"reason"`
	Detail    json.RawMessage `json:"detail"`
	CreatedAt time.Time       `json:"created_at"`
}

// EventRepository provides operations on the gesture event log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Create inserts an event into the log.
func (r *EventRepository) Create(e *Event) error {
	e.CreatedAt = time.Now()
	if len(e.Detail) == 0 {
		e.Detail = json.RawMessage("{}")
	}

	_, err := r.db.Exec(
		`INSERT INTO gesture_events (id, kind, state, reason, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Kind, e.State, e.Reason, string(e.Detail), e.CreatedAt,
	)
	return err
}

// List retrieves the most recent events, newest first, bounded by limit.
// A non-positive limit returns up to 100 events.
func (r *EventRepository) List(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(
		`SELECT id, kind, state, reason, detail, created_at
		 FROM gesture_events
		 ORDER BY created_at DESC, id
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var detail string
		if err := rows.Scan(&e.ID, &e.Kind, &e.State, &e.Reason, &detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Detail = json.RawMessage(detail)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Prune removes events older than the cutoff and returns how many were
// deleted.
func (r *EventRepository) Prune(before time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM gesture_events WHERE created_at < ?`, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
