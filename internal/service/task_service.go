package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/ssta/todo/internal/model"
	"github.com/ssta/todo/internal/store"
)

// TaskService owns the validation contract, the status cycle, and the
// failure classification for task items. Every public method runs its
// repository calls inside a single transaction.
type TaskService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTaskService returns a TaskService backed by st. A nil logger falls
// back to slog.Default.
func NewTaskService(st store.Store, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{store: st, logger: logger}
}

// FindAll returns every task item.
func (s *TaskService) FindAll(ctx context.Context) ([]model.TaskItem, error) {
	var items []model.TaskItem
	err := s.store.Transact(ctx, func(st store.Store) error {
		var err error
		items, err = st.FindAll(ctx)
		return err
	})
	if err != nil {
		return nil, classify(s.logger, err, "fetching all task items",
			"Failed to retrieve TODO items from database")
	}
	return items, nil
}

// FindByStatus returns every task item whose status is in statuses.
// No statuses means no constraint: the call is equivalent to FindAll.
// Duplicate statuses are collapsed before hitting the store.
func (s *TaskService) FindByStatus(ctx context.Context, statuses ...model.Status) ([]model.TaskItem, error) {
	if len(statuses) == 0 {
		return s.FindAll(ctx)
	}

	seen := make(map[model.Status]bool, len(statuses))
	unique := make([]model.Status, 0, len(statuses))
	for _, st := range statuses {
		if !seen[st] {
			seen[st] = true
			unique = append(unique, st)
		}
	}

	var items []model.TaskItem
	err := s.store.Transact(ctx, func(st store.Store) error {
		var err error
		items, err = st.FindByStatusIn(ctx, unique)
		return err
	})
	if err != nil {
		return nil, classify(s.logger, err, "filtering task items by status",
			"Failed to filter TODO items by status")
	}
	return items, nil
}

// FindByID returns the task item with the given id, or nil when no
// such item exists.
func (s *TaskService) FindByID(ctx context.Context, id int64) (*model.TaskItem, error) {
	if id <= 0 {
		verr := validationErr("ID is required")
		s.logger.Warn("validation error", "op", "finding task item", "message", verr.Message)
		return nil, verr
	}

	var item *model.TaskItem
	err := s.store.Transact(ctx, func(st store.Store) error {
		found, err := st.FindByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		item = found
		return err
	})
	if err != nil {
		return nil, classify(s.logger, err, "finding task item",
			"Failed to retrieve TODO item from database")
	}
	return item, nil
}

// Save validates the item and persists it, inserting when the ID is
// zero and updating otherwise. An unset status defaults to TODO before
// the write; it is not a validation failure.
func (s *TaskService) Save(ctx context.Context, item *model.TaskItem) (model.TaskItem, error) {
	if err := validateTaskItem(item); err != nil {
		s.logger.Warn("validation error", "op", "saving task item", "message", err.Message)
		return model.TaskItem{}, err
	}

	toSave := *item
	if toSave.Status == "" {
		toSave.Status = model.StatusTodo
	}

	var saved model.TaskItem
	err := s.store.Transact(ctx, func(st store.Store) error {
		var err error
		saved, err = st.Save(ctx, toSave)
		if errors.Is(err, store.ErrNotFound) {
			return validationErr("TaskItem with ID %d not found", toSave.ID)
		}
		return err
	})
	if err != nil {
		return model.TaskItem{}, classify(s.logger, err, "saving task item",
			"Failed to save TODO item to database")
	}

	s.logger.Info("saved task item", "id", saved.ID)
	return saved, nil
}

// Delete removes the task item with the given id. Unknown ids are a
// validation failure, not an infrastructure one.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		verr := validationErr("ID is required")
		s.logger.Warn("validation error", "op", "deleting task item", "message", verr.Message)
		return verr
	}

	err := s.store.Transact(ctx, func(st store.Store) error {
		exists, err := st.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return validationErr("TaskItem with ID %d not found", id)
		}
		return st.DeleteByID(ctx, id)
	})
	if err != nil {
		return classify(s.logger, err, "deleting task item",
			"Failed to delete TODO item from database")
	}

	s.logger.Info("deleted task item", "id", id)
	return nil
}

// CycleStatus advances the item's status by one position in the cycle
// TODO -> IN_PROGRESS -> COMPLETE -> TODO. The read-modify-write pair
// runs in one transaction; created_date is preserved and updated_date
// refreshed by the store.
func (s *TaskService) CycleStatus(ctx context.Context, id int64) (model.TaskItem, error) {
	if id <= 0 {
		verr := validationErr("ID is required")
		s.logger.Warn("validation error", "op", "cycling task item status", "message", verr.Message)
		return model.TaskItem{}, verr
	}

	var from model.Status
	var updated model.TaskItem
	err := s.store.Transact(ctx, func(st store.Store) error {
		item, err := st.FindByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return validationErr("TaskItem with ID %d not found", id)
		}
		if err != nil {
			return err
		}
		from = item.Status
		item.Status = item.Status.Next()
		updated, err = st.Save(ctx, *item)
		return err
	})
	if err != nil {
		return model.TaskItem{}, classify(s.logger, err, "cycling task item status",
			"Failed to update TODO item status in database")
	}

	s.logger.Info("cycled task item status",
		"id", id, "from", from, "to", updated.Status)
	return updated, nil
}

// FindAllSorted loads every task item and sorts it in memory with the
// supplied comparator. The sort is stable.
func (s *TaskService) FindAllSorted(ctx context.Context, compare Comparator) ([]model.TaskItem, error) {
	if compare == nil {
		verr := validationErr("Comparator is required")
		s.logger.Warn("validation error", "op", "sorting task items", "message", verr.Message)
		return nil, verr
	}

	var items []model.TaskItem
	err := s.store.Transact(ctx, func(st store.Store) error {
		var err error
		items, err = st.FindAll(ctx)
		return err
	})
	if err != nil {
		return nil, classify(s.logger, err, "sorting task items",
			"Failed to retrieve and sort TODO items from database")
	}

	slices.SortStableFunc(items, compare)
	return items, nil
}

// validateTaskItem applies the write-side validation contract in order;
// the first failure wins.
func validateTaskItem(item *model.TaskItem) *Error {
	if item == nil {
		return validationErr("TaskItem is required")
	}
	if strings.TrimSpace(item.Description) == "" {
		return validationErr("Description is required")
	}
	if utf8.RuneCountInString(item.Description) > model.MaxDescriptionLength {
		return validationErr("Description must not exceed %d characters", model.MaxDescriptionLength)
	}
	if utf8.RuneCountInString(item.DetailedNotes) > model.MaxDetailedNotesLength {
		return validationErr("Detailed notes must not exceed %d characters", model.MaxDetailedNotesLength)
	}
	if item.Priority != nil && (*item.Priority < model.MinPriority || *item.Priority > model.MaxPriority) {
		return validationErr("Priority must be between %d and %d", model.MinPriority, model.MaxPriority)
	}
	if item.Status != "" && !item.Status.IsValid() {
		return validationErr("Status %q is not a valid status", string(item.Status))
	}
	return nil
}
