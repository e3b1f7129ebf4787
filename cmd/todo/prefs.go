package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssta/todo/internal/model"
)

// todo prefs
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change which statuses the list displays",
	Args:  cobra.NoArgs,
	RunE:  runPrefsShow,
}

// todo prefs set
var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change display preferences",
	Args:  cobra.NoArgs,
	RunE:  runPrefsSet,
}

var (
	prefsShowTodo       bool
	prefsShowInProgress bool
	prefsShowComplete   bool
)

func init() {
	prefsSetCmd.Flags().BoolVar(&prefsShowTodo, "show-todo", true, "display tasks in To Do")
	prefsSetCmd.Flags().BoolVar(&prefsShowInProgress, "show-in-progress", true, "display tasks in In Progress")
	prefsSetCmd.Flags().BoolVar(&prefsShowComplete, "show-complete", true, "display tasks in Complete")

	prefsCmd.AddCommand(prefsSetCmd)
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	p, err := prefs.GetPreferences(cmd.Context())
	if err != nil {
		return renderErr(err)
	}
	printPreferences(p)
	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// The service heals unset flags to true, so flags the user did not
	// mention have to carry the current values.
	current, err := prefs.GetPreferences(ctx)
	if err != nil {
		return renderErr(err)
	}

	update := &model.PreferencesUpdate{
		ID:             current.ID,
		ShowTodo:       &current.ShowTodo,
		ShowInProgress: &current.ShowInProgress,
		ShowComplete:   &current.ShowComplete,
	}
	if cmd.Flags().Changed("show-todo") {
		update.ShowTodo = &prefsShowTodo
	}
	if cmd.Flags().Changed("show-in-progress") {
		update.ShowInProgress = &prefsShowInProgress
	}
	if cmd.Flags().Changed("show-complete") {
		update.ShowComplete = &prefsShowComplete
	}

	if _, err := prefs.UpdatePreferences(ctx, update); err != nil {
		return renderErr(err)
	}

	// Refetch so the output reflects stored state.
	saved, err := prefs.GetPreferences(ctx)
	if err != nil {
		return renderErr(err)
	}
	printPreferences(saved)
	return nil
}

func printPreferences(p model.Preferences) {
	fmt.Printf("Show To Do:       %v\n", p.ShowTodo)
	fmt.Printf("Show In Progress: %v\n", p.ShowInProgress)
	fmt.Printf("Show Complete:    %v\n", p.ShowComplete)
}
