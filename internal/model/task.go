package model

import "time"

// Field limits enforced by the service layer and mirrored by the schema.
const (
	MaxDescriptionLength   = 400
	MaxDetailedNotesLength = 400
	MinPriority            = 1
	MaxPriority            = 5
)

// TaskItem is one unit of work tracked by the system.
//
// ID is assigned by the store on first insert; a zero ID marks an item
// that has never been persisted. DueDate carries calendar-date precision
// only (midnight UTC). Priority is optional, with 1 as the highest.
type TaskItem struct {
	ID            int64      `json:"id" db:"id"`
	Description   string     `json:"description" db:"description"`
	DetailedNotes string     `json:"detailed_notes,omitempty" db:"detailed_notes"`
	Status        Status     `json:"status" db:"status"`
	Priority      *int       `json:"priority,omitempty" db:"priority"`
	DueDate       *time.Time `json:"due_date,omitempty" db:"due_date"`
	CreatedDate   time.Time  `json:"created_date" db:"created_date"`
	UpdatedDate   time.Time  `json:"updated_date" db:"updated_date"`
}

// IsOverdue reports whether the item's due date is strictly before
// today's calendar date. Items without a due date are never overdue.
func (t TaskItem) IsOverdue(today time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return DateOnly(*t.DueDate).Before(DateOnly(today))
}

// DateOnly truncates a timestamp to its calendar date at midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
