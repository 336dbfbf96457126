package cli

import (
	"fmt"

	"github.com/alexanderramin/scholia/internal/cli/formatter"
	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the tasks of a ticket",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskEditCmd(app),
		newTaskRemoveCmd(app),
		newTaskToggleCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var title, deadline string
	var phase int

	cmd := &cobra.Command{
		Use:   "add TICKET",
		Short: "Add a task to a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ticketID, err := resolveTicketID(ctx, app, args[0])
			if err != nil {
				return err
			}
			due, err := parseDateFlag("deadline", deadline)
			if err != nil {
				return err
			}
			task := &domain.Task{Title: title, PhaseID: phase, Deadline: due}
			t, err := app.Tickets.AddTask(ctx, ticketID, task)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s %s, %s now at %d%%\n",
				formatter.TruncID(task.ID), task.Title, t.Title, t.Progress)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().IntVar(&phase, "phase", 0, "Phase ID the task belongs to")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("phase")

	return cmd
}

func newTaskEditCmd(app *App) *cobra.Command {
	var title, deadline string
	var phase int

	cmd := &cobra.Command{
		Use:   "edit TICKET TASK",
		Short: "Change a task's title, phase or deadline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ticketID, err := resolveTicketID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tickets.GetByID(ctx, ticketID)
			if err != nil {
				return err
			}
			taskID, err := resolveTask(t, args[1])
			if err != nil {
				return err
			}
			task, _ := t.Task(taskID)

			flags := cmd.Flags()
			if flags.Changed("title") {
				task.Title = title
			}
			if flags.Changed("phase") {
				task.PhaseID = phase
			}
			if flags.Changed("deadline") {
				if task.Deadline, err = parseDateFlag("deadline", deadline); err != nil {
					return err
				}
			}

			if _, err := app.Tickets.UpdateTask(ctx, ticketID, task); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s %s\n", formatter.TruncID(task.ID), task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().IntVar(&phase, "phase", 0, "Move to this phase ID")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD, empty clears)")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm TICKET TASK",
		Aliases: []string{"remove"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ticketID, err := resolveTicketID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tickets.GetByID(ctx, ticketID)
			if err != nil {
				return err
			}
			taskID, err := resolveTask(t, args[1])
			if err != nil {
				return err
			}
			t, err = app.Tickets.DeleteTask(ctx, ticketID, taskID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s, %s now at %d%%\n", formatter.TruncID(taskID), t.Title, t.Progress)
			return nil
		},
	}
}

func newTaskToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle TICKET TASK",
		Aliases: []string{"done"},
		Short:   "Flip a task's completion and update phases and progress",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ticketID, err := resolveTicketID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tickets.GetByID(ctx, ticketID)
			if err != nil {
				return err
			}
			taskID, err := resolveTask(t, args[1])
			if err != nil {
				return err
			}
			out, err := app.Tickets.ToggleTask(ctx, ticketID, taskID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatToggle(out.Ticket, out.ToggleResult, app.now()))
			return nil
		},
	}
}
