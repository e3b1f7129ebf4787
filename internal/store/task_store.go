package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ssta/todo/internal/model"
)

// dueDateLayout is the storage format for due dates. Only the calendar
// date is meaningful, so the column is TEXT rather than DATETIME.
const dueDateLayout = "2006-01-02"

// taskRow mirrors the todo_items schema for scanning.
type taskRow struct {
	ID            int64          `db:"id"`
	Description   string         `db:"description"`
	DetailedNotes string         `db:"detailed_notes"`
	Status        string         `db:"status"`
	Priority      *int           `db:"priority"`
	DueDate       sql.NullString `db:"due_date"`
	CreatedDate   time.Time      `db:"created_date"`
	UpdatedDate   time.Time      `db:"updated_date"`
}

func (r taskRow) toModel() (model.TaskItem, error) {
	item := model.TaskItem{
		ID:            r.ID,
		Description:   r.Description,
		DetailedNotes: r.DetailedNotes,
		Status:        model.Status(r.Status),
		Priority:      r.Priority,
		CreatedDate:   r.CreatedDate.UTC(),
		UpdatedDate:   r.UpdatedDate.UTC(),
	}
	if r.DueDate.Valid && r.DueDate.String != "" {
		due, err := time.ParseInLocation(dueDateLayout, r.DueDate.String, time.UTC)
		if err != nil {
			return model.TaskItem{}, fmt.Errorf("parsing due_date %q for task item %d: %w", r.DueDate.String, r.ID, err)
		}
		item.DueDate = &due
	}
	return item, nil
}

// dueDateArg binds an optional due date as its storage representation.
func dueDateArg(due *time.Time) interface{} {
	if due == nil {
		return nil
	}
	return model.DateOnly(*due).Format(dueDateLayout)
}

// FindAll returns every task item. Order is unspecified; callers sort.
func (s *SQLiteStore) FindAll(ctx context.Context) ([]model.TaskItem, error) {
	var rows []taskRow
	err := s.q.SelectContext(ctx, &rows, "SELECT * FROM todo_items")
	if err != nil {
		return nil, fmt.Errorf("querying task items: %w", err)
	}
	return rowsToModels(rows)
}

// FindByID returns a single task item, or ErrNotFound.
func (s *SQLiteStore) FindByID(ctx context.Context, id int64) (*model.TaskItem, error) {
	var row taskRow
	err := s.q.GetContext(ctx, &row, "SELECT * FROM todo_items WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting task item %d: %w", id, err)
	}
	item, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ExistsByID reports whether a task item with the given id exists.
func (s *SQLiteStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int
	err := s.q.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM todo_items WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("checking task item %d: %w", id, err)
	}
	return count > 0, nil
}

// FindByStatusIn returns every task item whose status is in statuses.
// An empty status set returns an empty result.
func (s *SQLiteStore) FindByStatusIn(ctx context.Context, statuses []model.Status) ([]model.TaskItem, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(statuses))
	args := make([]interface{}, len(statuses))
	for i, st := range statuses {
		placeholders[i] = "?"
		args[i] = string(st)
	}
	query := "SELECT * FROM todo_items WHERE status IN (" +
		strings.Join(placeholders, ", ") + ")"

	var rows []taskRow
	if err := s.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("querying task items by status: %w", err)
	}
	return rowsToModels(rows)
}

// Save inserts the item when its ID is zero, assigning the id and both
// timestamps. Otherwise it updates the row, refreshing updated_date and
// leaving created_date untouched. The returned item is the post-persist
// snapshot.
func (s *SQLiteStore) Save(ctx context.Context, item model.TaskItem) (model.TaskItem, error) {
	now := time.Now().UTC()
	item.UpdatedDate = now
	if item.Status == "" {
		item.Status = model.StatusTodo
	}
	if item.DueDate != nil {
		due := model.DateOnly(*item.DueDate)
		item.DueDate = &due
	}

	if item.ID == 0 {
		item.CreatedDate = now
		res, err := s.q.ExecContext(ctx, `
			INSERT INTO todo_items (
				description, detailed_notes, status, priority,
				due_date, created_date, updated_date
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			item.Description, item.DetailedNotes, string(item.Status), item.Priority,
			dueDateArg(item.DueDate), item.CreatedDate, item.UpdatedDate,
		)
		if err != nil {
			return model.TaskItem{}, fmt.Errorf("inserting task item: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return model.TaskItem{}, fmt.Errorf("reading inserted task item id: %w", err)
		}
		item.ID = id
		return item, nil
	}

	res, err := s.q.ExecContext(ctx, `
		UPDATE todo_items SET
			description = ?, detailed_notes = ?, status = ?, priority = ?,
			due_date = ?, updated_date = ?
		WHERE id = ?`,
		item.Description, item.DetailedNotes, string(item.Status), item.Priority,
		dueDateArg(item.DueDate), item.UpdatedDate,
		item.ID,
	)
	if err != nil {
		return model.TaskItem{}, fmt.Errorf("updating task item %d: %w", item.ID, err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return model.TaskItem{}, fmt.Errorf("task item %d: %w", item.ID, ErrNotFound)
	}

	// Re-read so the snapshot carries the stored created_date.
	saved, err := s.FindByID(ctx, item.ID)
	if err != nil {
		return model.TaskItem{}, err
	}
	return *saved, nil
}

// DeleteByID removes a task item, or returns ErrNotFound.
func (s *SQLiteStore) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM todo_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task item %d: %w", id, err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("task item %d: %w", id, ErrNotFound)
	}
	return nil
}

func rowsToModels(rows []taskRow) ([]model.TaskItem, error) {
	var items []model.TaskItem
	for _, r := range rows {
		item, err := r.toModel()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
