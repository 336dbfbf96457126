package cli

import (
	"fmt"

	"github.com/alexanderramin/scholia/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newFocusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Show up to five tasks to work on today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Focus.TodaysFocus(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatFocus(items, app.now()))
			return nil
		},
	}

	cmd.AddCommand(newFocusNextCmd(app))

	return cmd
}

func newFocusNextCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "next TICKET",
		Short: "Show the open tasks of a ticket's current phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ticketID, err := resolveTicketID(ctx, app, args[0])
			if err != nil {
				return err
			}
			tasks, err := app.Focus.RelevantTasks(ctx, ticketID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No open tasks."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTasks(tasks, app.now()))
			return nil
		},
	}
}
