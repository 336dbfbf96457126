package cli

import (
	"fmt"

	"github.com/alexanderramin/scholia/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	var brief string

	cmd := &cobra.Command{
		Use:   "plan TICKET",
		Short: "Ask the local model to draft phases and tasks for a ticket",
		Long: `Ask the configured Ollama model for a plan. The drafted phases are
appended after the ticket's existing ones; nothing is written when the
model's answer does not validate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ticketID, err := resolveTicketID(ctx, app, args[0])
			if err != nil {
				return err
			}
			res, err := app.Plans.Generate(ctx, ticketID, brief)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added %d phases and %d tasks\n\n", res.PhasesAdded, res.TasksAdded)
			fmt.Fprintln(out, formatter.FormatTicketDetail(res.Ticket, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&brief, "brief", "", "Extra context for the model")

	return cmd
}
