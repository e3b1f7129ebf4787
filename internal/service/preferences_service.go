package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ssta/todo/internal/model"
	"github.com/ssta/todo/internal/store"
)

// PreferencesService manages the single user-preferences record: a
// get-or-create singleton with healable defaults.
type PreferencesService struct {
	store  store.Store
	logger *slog.Logger
}

// NewPreferencesService returns a PreferencesService backed by st and
// performs a best-effort idempotent initialization: if the preferences
// row is missing it is created with all statuses visible. An
// initialization failure is logged and suppressed so the host can
// start; GetPreferences re-attempts creation lazily.
func NewPreferencesService(ctx context.Context, st store.Store, logger *slog.Logger) *PreferencesService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &PreferencesService{store: st, logger: logger}
	s.initializeDefaults(ctx)
	return s
}

// GetPreferences returns the preferences record, creating and
// persisting the default when none exists. It never reports "absent".
func (s *PreferencesService) GetPreferences(ctx context.Context) (model.Preferences, error) {
	var prefs model.Preferences
	err := s.store.Transact(ctx, func(st store.Store) error {
		found, err := st.FindPreferences(ctx)
		if err == nil {
			prefs = *found
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		prefs, err = st.SavePreferences(ctx, model.DefaultPreferences())
		if err != nil {
			return err
		}
		s.logger.Info("created default user preferences")
		return nil
	})
	if err != nil {
		return model.Preferences{}, classify(s.logger, err, "fetching user preferences",
			"Failed to retrieve user preferences from database")
	}
	return prefs, nil
}

// UpdatePreferences persists the caller's preferences. The id is forced
// to the singleton identity and unset flags are healed to true.
func (s *PreferencesService) UpdatePreferences(ctx context.Context, update *model.PreferencesUpdate) (model.Preferences, error) {
	if update == nil {
		verr := validationErr("Preferences are required")
		s.logger.Warn("validation error", "op", "updating user preferences", "message", verr.Message)
		return model.Preferences{}, verr
	}

	healed := model.Preferences{
		ID:             model.PreferencesID,
		ShowTodo:       flagOrTrue(update.ShowTodo),
		ShowInProgress: flagOrTrue(update.ShowInProgress),
		ShowComplete:   flagOrTrue(update.ShowComplete),
	}

	var saved model.Preferences
	err := s.store.Transact(ctx, func(st store.Store) error {
		var err error
		saved, err = st.SavePreferences(ctx, healed)
		return err
	})
	if err != nil {
		return model.Preferences{}, classify(s.logger, err, "updating user preferences",
			"Failed to save user preferences to database")
	}

	s.logger.Info("updated user preferences")
	return saved, nil
}

// initializeDefaults creates the default row when missing. Failures are
// logged and swallowed so service construction cannot block startup.
func (s *PreferencesService) initializeDefaults(ctx context.Context) {
	err := s.store.Transact(ctx, func(st store.Store) error {
		exists, err := st.PreferencesExist(ctx)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		if _, err := st.SavePreferences(ctx, model.DefaultPreferences()); err != nil {
			return err
		}
		s.logger.Info("created default user preferences")
		return nil
	})
	if err != nil {
		s.logger.Error("initializing default preferences", "cause", err)
		s.logger.Warn("started without preferences; they will be created on first access")
	}
}

func flagOrTrue(flag *bool) bool {
	if flag == nil {
		return true
	}
	return *flag
}
