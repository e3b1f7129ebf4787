package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ssta/todo/internal/model"
	"github.com/ssta/todo/internal/service"
	"github.com/ssta/todo/internal/store"
	"github.com/ssta/todo/tests/testutil"
)

func boolPtr(v bool) *bool {
	return &v
}

// flakyStore delegates to an inner store but fails every transaction
// while fail is set.
type flakyStore struct {
	store.Store
	fail bool
	err  error
}

func (f *flakyStore) Transact(ctx context.Context, fn func(store.Store) error) error {
	if f.fail {
		return f.err
	}
	return f.Store.Transact(ctx, fn)
}

func TestConstructionCreatesDefaultRow(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()

	service.NewPreferencesService(ctx, st, quietLogger())

	stored, err := st.FindPreferences(ctx)
	if err != nil {
		t.Fatalf("expected the default row to be persisted: %v", err)
	}
	if *stored != model.DefaultPreferences() {
		t.Errorf("stored = %+v, want defaults", stored)
	}
}

func TestConstructionIsIdempotent(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()

	svc := service.NewPreferencesService(ctx, st, quietLogger())
	if _, err := svc.UpdatePreferences(ctx, &model.PreferencesUpdate{
		ShowTodo:       boolPtr(false),
		ShowInProgress: boolPtr(true),
		ShowComplete:   boolPtr(true),
	}); err != nil {
		t.Fatalf("updating: %v", err)
	}

	// A second service over the same store must not reset the row.
	svc2 := service.NewPreferencesService(ctx, st, quietLogger())
	prefs, err := svc2.GetPreferences(ctx)
	if err != nil {
		t.Fatalf("getting: %v", err)
	}
	if prefs.ShowTodo {
		t.Error("re-initialization clobbered a stored preference")
	}
}

func TestGetPreferencesSelfHeals(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()

	// Break initialization so construction leaves the table empty.
	flaky := &flakyStore{Store: st, fail: true, err: errors.New("db down")}
	svc := service.NewPreferencesService(ctx, flaky, quietLogger())

	if exists, err := st.PreferencesExist(ctx); err != nil || exists {
		t.Fatalf("expected empty preferences table after failed init (exists=%v, err=%v)", exists, err)
	}

	// Storage recovers; the first read creates and persists defaults.
	flaky.fail = false
	prefs, err := svc.GetPreferences(ctx)
	if err != nil {
		t.Fatalf("getting: %v", err)
	}
	if prefs != model.DefaultPreferences() {
		t.Errorf("got %+v, want defaults", prefs)
	}

	stored, err := st.FindPreferences(ctx)
	if err != nil {
		t.Fatalf("expected the lazy default to be persisted: %v", err)
	}
	if *stored != model.DefaultPreferences() {
		t.Errorf("stored = %+v, want defaults", stored)
	}
}

func TestUpdatePreferencesForcesIDAndHealsNilFlags(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()
	svc := service.NewPreferencesService(ctx, st, quietLogger())

	saved, err := svc.UpdatePreferences(ctx, &model.PreferencesUpdate{
		ID:             99,
		ShowTodo:       nil, // healed to true
		ShowInProgress: boolPtr(false),
		ShowComplete:   boolPtr(true),
	})
	if err != nil {
		t.Fatalf("updating: %v", err)
	}

	want := model.Preferences{
		ID:             model.PreferencesID,
		ShowTodo:       true,
		ShowInProgress: false,
		ShowComplete:   true,
	}
	if saved != want {
		t.Errorf("returned %+v, want %+v", saved, want)
	}

	got, err := svc.GetPreferences(ctx)
	if err != nil {
		t.Fatalf("getting: %v", err)
	}
	if got != want {
		t.Errorf("fetched %+v, want %+v", got, want)
	}
}

func TestUpdatePreferencesRejectsNil(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()
	svc := service.NewPreferencesService(ctx, st, quietLogger())

	_, err := svc.UpdatePreferences(ctx, nil)
	if !service.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Preferences are required" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestPreferencesStorageFailuresAreInfrastructure(t *testing.T) {
	cause := errors.New("disk on fire")
	svc := service.NewPreferencesService(context.Background(),
		&failingStore{err: cause}, quietLogger())
	ctx := context.Background()

	_, err := svc.GetPreferences(ctx)
	if !service.IsInfrastructure(err) {
		t.Fatalf("expected infrastructure error, got %v", err)
	}
	if err.Error() != "Failed to retrieve user preferences from database" {
		t.Errorf("message = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be preserved via Unwrap")
	}

	_, err = svc.UpdatePreferences(ctx, &model.PreferencesUpdate{})
	if !service.IsInfrastructure(err) {
		t.Fatalf("expected infrastructure error, got %v", err)
	}
	if err.Error() != "Failed to save user preferences to database" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestVisibleStatuses(t *testing.T) {
	p := model.Preferences{ShowTodo: true, ShowComplete: true}
	got := p.VisibleStatuses()
	want := []model.Status{model.StatusTodo, model.StatusComplete}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}

	if hidden := (model.Preferences{}).VisibleStatuses(); len(hidden) != 0 {
		t.Errorf("expected no visible statuses, got %v", hidden)
	}
}
