package model

// Status is the workflow state of a task item. Values are persisted
// literally, so renaming a constant is a schema migration.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusComplete   Status = "COMPLETE"
)

// AllStatuses returns every status in declaration order. The order is
// also the sort order used by the status comparator.
func AllStatuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusComplete}
}

// IsValid reports whether s is a known status value.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusComplete:
		return true
	default:
		return false
	}
}

// DisplayLabel returns the human-readable label for the status.
func (s Status) DisplayLabel() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusComplete:
		return "Complete"
	default:
		return string(s)
	}
}

// Next returns the cyclic successor:
// TODO -> IN_PROGRESS -> COMPLETE -> TODO.
func (s Status) Next() Status {
	switch s {
	case StatusTodo:
		return StatusInProgress
	case StatusInProgress:
		return StatusComplete
	case StatusComplete:
		return StatusTodo
	default:
		return s
	}
}

// Index returns the position of s in declaration order. Unknown statuses
// sort after known ones.
func (s Status) Index() int {
	switch s {
	case StatusTodo:
		return 0
	case StatusInProgress:
		return 1
	case StatusComplete:
		return 2
	default:
		return 3
	}
}
