package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/ssta/todo/internal/model"
)

// printTaskTable prints tasks in a table format. Overdue tasks are
// marked with "!" in the DUE column.
func printTaskTable(items []model.TaskItem, now time.Time) {
	if len(items) == 0 {
		fmt.Println("No tasks found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRI\tDUE\tDESCRIPTION")
	for _, item := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			item.ID,
			item.Status.DisplayLabel(),
			formatPriority(item.Priority),
			formatDue(item, now),
			item.Description,
		)
	}
	w.Flush()
}

// printTaskDetail prints one task with every field on its own line.
func printTaskDetail(item model.TaskItem, now time.Time) {
	fmt.Printf("ID:          %d\n", item.ID)
	fmt.Printf("Description: %s\n", item.Description)
	if item.DetailedNotes != "" {
		fmt.Printf("Notes:       %s\n", item.DetailedNotes)
	}
	fmt.Printf("Status:      %s\n", item.Status.DisplayLabel())
	fmt.Printf("Priority:    %s\n", formatPriority(item.Priority))
	fmt.Printf("Due:         %s\n", formatDue(item, now))
	fmt.Printf("Created:     %s\n", item.CreatedDate.Local().Format(time.RFC1123))
	fmt.Printf("Updated:     %s\n", item.UpdatedDate.Local().Format(time.RFC1123))
}

func formatPriority(priority *int) string {
	if priority == nil {
		return "-"
	}
	return strconv.Itoa(*priority)
}

func formatDue(item model.TaskItem, now time.Time) string {
	if item.DueDate == nil {
		return "-"
	}
	due := item.DueDate.Format(dueDateLayout)
	if item.IsOverdue(now) {
		return due + " !"
	}
	return due
}
