package store

import (
	"database/sql"
	"time"
)

// EventSource distinguishes how a gesture transition was produced.
type EventSource string

const (
	// SourceLive marks transitions produced by live classification.
	SourceLive EventSource = "live"
	// SourceForced marks transitions produced by a forced override.
	SourceForced EventSource = "forced"
)

// Event records one gesture transition.
type Event struct {
	ID          string
	FromGesture string
	ToGesture   string
	Source      EventSource
	CreatedAt   time.Time
}

// EventRepository provides access to the gesture event log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Insert appends a transition to the event log.
func (r *EventRepository) Insert(e *Event) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO events (id, from_gesture, to_gesture, source, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.FromGesture, e.ToGesture, string(e.Source), e.CreatedAt,
	)
	return err
}

// ListRecent returns the most recent transitions, newest first.
func (r *EventRepository) ListRecent(limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, from_gesture, to_gesture, source, created_at
		 FROM events ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		var source string
		if err := rows.Scan(&e.ID, &e.FromGesture, &e.ToGesture, &source, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Source = EventSource(source)
		events = append(events, e)
	}

	return events, rows.Err()
}

// Prune deletes events older than the cutoff and returns how many were removed.
func (r *EventRepository) Prune(olderThan time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM events WHERE created_at < ?`, olderThan)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
