package model

// PreferencesID is the fixed identity of the single preferences row.
// The application is single-user, so exactly one row ever exists.
const PreferencesID int64 = 1

// Preferences is the user's display configuration: which workflow
// states the task list shows.
type Preferences struct {
	ID             int64 `json:"id" db:"id"`
	ShowTodo       bool  `json:"show_todo" db:"show_todo"`
	ShowInProgress bool  `json:"show_in_progress" db:"show_in_progress"`
	ShowComplete   bool  `json:"show_complete" db:"show_complete"`
}

// DefaultPreferences returns the record created on first run: every
// status visible.
func DefaultPreferences() Preferences {
	return Preferences{
		ID:             PreferencesID,
		ShowTodo:       true,
		ShowInProgress: true,
		ShowComplete:   true,
	}
}

// VisibleStatuses returns the statuses enabled by the preferences, in
// declaration order.
func (p Preferences) VisibleStatuses() []Status {
	var statuses []Status
	if p.ShowTodo {
		statuses = append(statuses, StatusTodo)
	}
	if p.ShowInProgress {
		statuses = append(statuses, StatusInProgress)
	}
	if p.ShowComplete {
		statuses = append(statuses, StatusComplete)
	}
	return statuses
}

// PreferencesUpdate is the caller-supplied input to an update. Nil flags
// mean "unset" and are healed to true; any ID is overwritten with
// PreferencesID.
type PreferencesUpdate struct {
	ID             int64
	ShowTodo       *bool
	ShowInProgress *bool
	ShowComplete   *bool
}
