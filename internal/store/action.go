package store

import (
	"database/sql"
	"errors"
	"time"
)

// Action binds a plugin action to a gesture: when the classifier reports a
// transition into the gesture, the named plugin action runs.
type Action struct {
	ID         string
	Gesture    string
	PluginName string
	ActionName string
	Config     string // JSON blob passed through to the plugin
	Enabled    bool
	CreatedAt  time.Time
}

// ActionRepository provides CRUD operations for action bindings.
type ActionRepository struct {
	db *sql.DB
}

// Actions returns the action repository for this store.
func (s *Store) Actions() *ActionRepository {
	return &ActionRepository{db: s.db}
}

// Create inserts a new action binding.
func (r *ActionRepository) Create(a *Action) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if a.Config == "" {
		a.Config = "{}"
	}

	_, err := r.db.Exec(
		`INSERT INTO actions (id, gesture, plugin_name, action_name, config, enabled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Gesture, a.PluginName, a.ActionName, a.Config, boolToInt(a.Enabled), a.CreatedAt,
	)
	return err
}

// GetByID retrieves an action binding by its ID.
func (r *ActionRepository) GetByID(id string) (*Action, error) {
	a := &Action{}
	var enabled int

	err := r.db.QueryRow(
		`SELECT id, gesture, plugin_name, action_name, config, enabled, created_at
		 FROM actions WHERE id = ?`,
		id,
	).Scan(&a.ID, &a.Gesture, &a.PluginName, &a.ActionName, &a.Config, &enabled, &a.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	a.Enabled = enabled != 0
	return a, nil
}

// ListByGesture returns the enabled action bindings for a gesture.
func (r *ActionRepository) ListByGesture(gesture string) ([]*Action, error) {
	rows, err := r.db.Query(
		`SELECT id, gesture, plugin_name, action_name, config, enabled, created_at
		 FROM actions WHERE gesture = ? AND enabled = 1 ORDER BY created_at`,
		gesture,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActions(rows)
}

// List returns every action binding.
func (r *ActionRepository) List() ([]*Action, error) {
	rows, err := r.db.Query(
		`SELECT id, gesture, plugin_name, action_name, config, enabled, created_at
		 FROM actions ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActions(rows)
}

// Update rewrites an existing action binding.
// Returns ErrNotFound if the binding does not exist.
func (r *ActionRepository) Update(a *Action) error {
	res, err := r.db.Exec(
		`UPDATE actions SET gesture = ?, plugin_name = ?, action_name = ?, config = ?, enabled = ?
		 WHERE id = ?`,
		a.Gesture, a.PluginName, a.ActionName, a.Config, boolToInt(a.Enabled), a.ID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an action binding by ID.
// Returns ErrNotFound if no binding was deleted.
func (r *ActionRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM actions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanActions(rows *sql.Rows) ([]*Action, error) {
	var actions []*Action
	for rows.Next() {
		a := &Action{}
		var enabled int
		if err := rows.Scan(&a.ID, &a.Gesture, &a.PluginName, &a.ActionName, &a.Config, &enabled, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Enabled = enabled != 0
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
