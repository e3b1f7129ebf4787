package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ssta/todo/internal/model"
)

// prefsRow mirrors the user_preferences schema for scanning. SQLite has
// no boolean type, so flags round-trip as 0/1 integers.
type prefsRow struct {
	ID             int64 `db:"id"`
	ShowTodo       int   `db:"show_todo"`
	ShowInProgress int   `db:"show_in_progress"`
	ShowComplete   int   `db:"show_complete"`
}

func (r prefsRow) toModel() model.Preferences {
	return model.Preferences{
		ID:             r.ID,
		ShowTodo:       r.ShowTodo != 0,
		ShowInProgress: r.ShowInProgress != 0,
		ShowComplete:   r.ShowComplete != 0,
	}
}

// FindPreferences returns the single preferences row, or ErrNotFound.
func (s *SQLiteStore) FindPreferences(ctx context.Context) (*model.Preferences, error) {
	var row prefsRow
	err := s.q.GetContext(ctx, &row,
		"SELECT * FROM user_preferences WHERE id = ?", model.PreferencesID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user preferences: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user preferences: %w", err)
	}
	prefs := row.toModel()
	return &prefs, nil
}

// PreferencesExist reports whether the preferences row has been created.
func (s *SQLiteStore) PreferencesExist(ctx context.Context) (bool, error) {
	var count int
	err := s.q.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM user_preferences WHERE id = ?", model.PreferencesID)
	if err != nil {
		return false, fmt.Errorf("checking user preferences: %w", err)
	}
	return count > 0, nil
}

// SavePreferences writes the preferences row, forcing its id to
// model.PreferencesID so at most one row ever exists.
func (s *SQLiteStore) SavePreferences(ctx context.Context, prefs model.Preferences) (model.Preferences, error) {
	prefs.ID = model.PreferencesID

	_, err := s.q.ExecContext(ctx, `
		INSERT OR REPLACE INTO user_preferences (
			id, show_todo, show_in_progress, show_complete
		) VALUES (?, ?, ?, ?)`,
		prefs.ID, boolToInt(prefs.ShowTodo),
		boolToInt(prefs.ShowInProgress), boolToInt(prefs.ShowComplete),
	)
	if err != nil {
		return model.Preferences{}, fmt.Errorf("saving user preferences: %w", err)
	}

	return prefs, nil
}
