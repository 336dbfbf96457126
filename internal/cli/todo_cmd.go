package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/scholia/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTodoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Keep a checklist outside any ticket",
	}

	cmd.AddCommand(
		newTodoAddCmd(app),
		newTodoListCmd(app),
		newTodoDoneCmd(app),
		newTodoRemoveCmd(app),
		newTodoPrioritizeCmd(app),
	)

	return cmd
}

func newTodoAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add TITLE...",
		Short: "Append a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			todo, err := app.Todos.Create(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added todo %s %s\n", formatter.TruncID(todo.ID), todo.Title)
			return nil
		},
	}
}

func newTodoListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			todos, err := app.Todos.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTodos(todos))
			return nil
		},
	}
}

func newTodoDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Mark a todo done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTodoID(ctx, app, args[0])
			if err != nil {
				return err
			}
			todo, err := app.Todos.Complete(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Checkbox(todo.Done), todo.Title)
			return nil
		},
	}
}

func newTodoRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTodoID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Todos.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted todo %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

func newTodoPrioritizeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "prioritize",
		Short: "Let the local model reorder open todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			todos, err := app.Todos.Prioritize(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTodos(todos))
			return nil
		},
	}
}
