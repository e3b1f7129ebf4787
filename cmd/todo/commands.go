package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssta/todo/internal/model"
	"github.com/ssta/todo/internal/service"
)

const dueDateLayout = "2006-01-02"

// todo add
var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a new task",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

var (
	addNotes    string
	addPriority int
	addDue      string
	addStatus   string
)

// todo list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, honoring display preferences",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var (
	listStatuses []string
	listSort     string
	listAll      bool
)

// todo show
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

// todo edit
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit fields of an existing task",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var (
	editDescription string
	editNotes       string
	editPriority    int
	editDue         string
	editStatus      string
)

// todo cycle
var cycleCmd = &cobra.Command{
	Use:   "cycle <id>...",
	Short: "Advance one or more tasks to the next workflow state",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCycle,
}

// todo delete
var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

func init() {
	addCmd.Flags().StringVar(&addNotes, "notes", "", "detailed notes")
	addCmd.Flags().IntVar(&addPriority, "priority", 0, "priority 1-5 (1 is highest)")
	addCmd.Flags().StringVar(&addDue, "due", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addStatus, "status", "", "initial status (todo, in-progress, complete)")

	listCmd.Flags().StringSliceVar(&listStatuses, "status", nil,
		"filter by status; repeatable (todo, in-progress, complete)")
	listCmd.Flags().StringVar(&listSort, "sort", "",
		"sort order: status, description, priority, or due")
	listCmd.Flags().BoolVar(&listAll, "all", false,
		"ignore display preferences and show every task")

	editCmd.Flags().StringVar(&editDescription, "description", "", "new description")
	editCmd.Flags().StringVar(&editNotes, "notes", "", "new detailed notes")
	editCmd.Flags().IntVar(&editPriority, "priority", 0, "new priority 1-5; 0 clears it")
	editCmd.Flags().StringVar(&editDue, "due", "", "new due date (YYYY-MM-DD); \"none\" clears it")
	editCmd.Flags().StringVar(&editStatus, "status", "", "new status (todo, in-progress, complete)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	item := &model.TaskItem{
		Description:   args[0],
		DetailedNotes: addNotes,
	}
	if cmd.Flags().Changed("priority") {
		p := addPriority
		item.Priority = &p
	}
	if addDue != "" {
		due, err := parseDueDate(addDue)
		if err != nil {
			return err
		}
		item.DueDate = &due
	}
	if addStatus != "" {
		status, err := parseStatus(addStatus)
		if err != nil {
			return err
		}
		item.Status = status
	}

	saved, err := tasks.Save(ctx, item)
	if err != nil {
		return renderErr(err)
	}

	// Refetch after the write; never print optimistic state.
	fresh, err := tasks.FindByID(ctx, saved.ID)
	if err != nil {
		return renderErr(err)
	}
	fmt.Printf("Added task %d\n", fresh.ID)
	printTaskTable([]model.TaskItem{*fresh}, time.Now())
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var items []model.TaskItem
	var err error
	switch {
	case len(listStatuses) > 0:
		statuses := make([]model.Status, 0, len(listStatuses))
		for _, raw := range listStatuses {
			status, perr := parseStatus(raw)
			if perr != nil {
				return perr
			}
			statuses = append(statuses, status)
		}
		items, err = tasks.FindByStatus(ctx, statuses...)
	case listAll:
		if listSort != "" {
			compare, cerr := comparatorFor(listSort)
			if cerr != nil {
				return cerr
			}
			items, err = tasks.FindAllSorted(ctx, compare)
			if err != nil {
				return renderErr(err)
			}
			printTaskTable(items, time.Now())
			return nil
		}
		items, err = tasks.FindAll(ctx)
	default:
		p, perr := prefs.GetPreferences(ctx)
		if perr != nil {
			return renderErr(perr)
		}
		visible := p.VisibleStatuses()
		if len(visible) == 0 {
			fmt.Println("All statuses are hidden by preferences. Run \"todo prefs\" to review them.")
			return nil
		}
		items, err = tasks.FindByStatus(ctx, visible...)
	}
	if err != nil {
		return renderErr(err)
	}

	if listSort != "" {
		compare, cerr := comparatorFor(listSort)
		if cerr != nil {
			return cerr
		}
		slices.SortStableFunc(items, compare)
	}

	printTaskTable(items, time.Now())
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	item, err := tasks.FindByID(cmd.Context(), id)
	if err != nil {
		return renderErr(err)
	}
	if item == nil {
		return fmt.Errorf("TaskItem with ID %d not found", id)
	}

	printTaskDetail(*item, time.Now())
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	item, err := tasks.FindByID(ctx, id)
	if err != nil {
		return renderErr(err)
	}
	if item == nil {
		return fmt.Errorf("TaskItem with ID %d not found", id)
	}

	if cmd.Flags().Changed("description") {
		item.Description = editDescription
	}
	if cmd.Flags().Changed("notes") {
		item.DetailedNotes = editNotes
	}
	if cmd.Flags().Changed("priority") {
		if editPriority == 0 {
			item.Priority = nil
		} else {
			p := editPriority
			item.Priority = &p
		}
	}
	if cmd.Flags().Changed("due") {
		if editDue == "" || editDue == "none" {
			item.DueDate = nil
		} else {
			due, derr := parseDueDate(editDue)
			if derr != nil {
				return derr
			}
			item.DueDate = &due
		}
	}
	if cmd.Flags().Changed("status") {
		status, serr := parseStatus(editStatus)
		if serr != nil {
			return serr
		}
		item.Status = status
	}

	if _, err := tasks.Save(ctx, item); err != nil {
		return renderErr(err)
	}

	fresh, err := tasks.FindByID(ctx, id)
	if err != nil {
		return renderErr(err)
	}
	printTaskTable([]model.TaskItem{*fresh}, time.Now())
	return nil
}

func runCycle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		updated, err := tasks.CycleStatus(ctx, id)
		if err != nil {
			return renderErr(err)
		}
		fmt.Printf("Task %d is now %s\n", updated.ID, updated.Status.DisplayLabel())
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		if err := tasks.Delete(ctx, id); err != nil {
			return renderErr(err)
		}
		fmt.Printf("Deleted task %d\n", id)
	}
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}

func parseDueDate(raw string) (time.Time, error) {
	due, err := time.ParseInLocation(dueDateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q: expected YYYY-MM-DD", raw)
	}
	return due, nil
}

func parseStatus(raw string) (model.Status, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "-", "_"))
	status := model.Status(normalized)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status %q: expected todo, in-progress, or complete", raw)
	}
	return status, nil
}

func comparatorFor(name string) (service.Comparator, error) {
	switch name {
	case "status":
		return service.ByStatus(), nil
	case "description":
		return service.ByDescription(), nil
	case "priority":
		return service.ByPriority(), nil
	case "due":
		return service.ByDueDate(time.Now()), nil
	default:
		return nil, fmt.Errorf("invalid sort %q: expected status, description, priority, or due", name)
	}
}
