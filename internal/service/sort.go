package service

import (
	"cmp"
	"time"

	"golang.org/x/text/cases"

	"github.com/ssta/todo/internal/model"
)

// Comparator is a total order over task items, returning a negative
// value when a sorts before b, zero when they compare equal, and a
// positive value otherwise. Comparators are pure so the UI's sort
// orders can be tested without a UI runtime; equal keys keep their
// incoming relative order (FindAllSorted sorts stably).
type Comparator func(a, b model.TaskItem) int

// descriptionFolder gives a locale-independent case fold for the
// description comparator.
var descriptionFolder = cases.Fold()

// ByStatus orders items by workflow state in declaration order:
// TODO < IN_PROGRESS < COMPLETE.
func ByStatus() Comparator {
	return func(a, b model.TaskItem) int {
		return cmp.Compare(a.Status.Index(), b.Status.Index())
	}
}

// ByDescription orders items case-insensitively by description using a
// locale-independent fold. Empty descriptions compare as the empty
// string.
func ByDescription() Comparator {
	return func(a, b model.TaskItem) int {
		fa := descriptionFolder.String(a.Description)
		fb := descriptionFolder.String(b.Description)
		return cmp.Compare(fa, fb)
	}
}

// ByPriority orders items by priority ascending (1 is highest) with
// absent priorities last. Two absent priorities compare equal.
func ByPriority() Comparator {
	return func(a, b model.TaskItem) int {
		switch {
		case a.Priority == nil && b.Priority == nil:
			return 0
		case a.Priority == nil:
			return 1
		case b.Priority == nil:
			return -1
		}
		return cmp.Compare(*a.Priority, *b.Priority)
	}
}

// ByDueDate orders items by due date ascending with overdue items
// first and absent due dates last. An item is overdue when its due
// date is strictly before today's calendar date.
func ByDueDate(today time.Time) Comparator {
	cutoff := model.DateOnly(today)
	group := func(due *time.Time) int {
		switch {
		case due == nil:
			return 2
		case model.DateOnly(*due).Before(cutoff):
			return 0
		default:
			return 1
		}
	}
	return func(a, b model.TaskItem) int {
		ga, gb := group(a.DueDate), group(b.DueDate)
		if ga != gb {
			return cmp.Compare(ga, gb)
		}
		if a.DueDate == nil {
			return 0
		}
		return model.DateOnly(*a.DueDate).Compare(model.DateOnly(*b.DueDate))
	}
}
