package store

import (
	"context"
	"errors"

	"github.com/ssta/todo/internal/model"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// TaskRepository is the persistence contract for task items. Any backing
// store satisfies it; callers never inspect the concrete type.
type TaskRepository interface {
	// FindAll returns every task item. Order is unspecified.
	FindAll(ctx context.Context) ([]model.TaskItem, error)

	// FindByID returns the item with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*model.TaskItem, error)

	// ExistsByID reports whether an item with the given id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// FindByStatusIn returns every item whose status is in statuses.
	// An empty set yields an empty result.
	FindByStatusIn(ctx context.Context, statuses []model.Status) ([]model.TaskItem, error)

	// Save inserts when the item's ID is zero, assigning the id and both
	// timestamps; otherwise it updates the row, refreshing updated_date
	// only. Returns the post-persist snapshot.
	Save(ctx context.Context, item model.TaskItem) (model.TaskItem, error)

	// DeleteByID removes the row, or returns ErrNotFound.
	DeleteByID(ctx context.Context, id int64) error
}

// PreferencesRepository is the persistence contract for the single
// preferences row.
type PreferencesRepository interface {
	// FindPreferences returns the preferences row, or ErrNotFound.
	FindPreferences(ctx context.Context) (*model.Preferences, error)

	// PreferencesExist reports whether the row has been created.
	PreferencesExist(ctx context.Context) (bool, error)

	// SavePreferences writes the row, forcing its id to
	// model.PreferencesID. Returns the stored snapshot.
	SavePreferences(ctx context.Context, prefs model.Preferences) (model.Preferences, error)
}

// Store combines both repositories with transaction control. Transact
// runs fn inside a single database transaction; every call made through
// the Store passed to fn shares that transaction. Calling Transact on a
// transactional Store joins the open transaction.
type Store interface {
	TaskRepository
	PreferencesRepository

	Transact(ctx context.Context, fn func(Store) error) error
}
