package cli

import (
	"fmt"

	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/spf13/cobra"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage the phases of a ticket",
	}

	cmd.AddCommand(
		newPhaseAddCmd(app),
		newPhaseDoneCmd(app),
		newPhaseRemoveCmd(app),
	)

	return cmd
}

func newPhaseAddCmd(app *App) *cobra.Command {
	var name, start, end string

	cmd := &cobra.Command{
		Use:   "add TICKET",
		Short: "Append a phase to a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ticketID, err := resolveTicketID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p := &domain.Phase{Name: name}
			if d, err := parseDateFlag("start", start); err != nil {
				return err
			} else if d != nil {
				p.StartDate = *d
			}
			if d, err := parseDateFlag("end", end); err != nil {
				return err
			} else if d != nil {
				p.EndDate = *d
			}

			if err := app.Tickets.AddPhase(ctx, ticketID, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added phase %d %s\n", p.ID, p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Phase name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPhaseDoneCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done TICKET PHASE",
		Short: "Mark a phase completed without touching its tasks",
		Long: `Mark a phase completed (or not, with --undo). Tasks are left as they
are, so the next task toggle on the ticket recomputes the flag from them.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ticketID, err := resolveTicketID(ctx, app, args[0])
			if err != nil {
				return err
			}
			phaseID, err := parsePhaseID(args[1])
			if err != nil {
				return err
			}
			t, err := app.Tickets.SetPhaseCompleted(ctx, ticketID, phaseID, !undo)
			if err != nil {
				return err
			}
			p, _ := t.Phase(phaseID)
			state := "completed"
			if !p.Completed {
				state = "open"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Phase %d %s is %s\n", p.ID, p.Name, state)
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the phase as not completed")

	return cmd
}

func newPhaseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm TICKET PHASE",
		Aliases: []string{"remove"},
		Short:   "Delete a phase and its tasks",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ticketID, err := resolveTicketID(ctx, app, args[0])
			if err != nil {
				return err
			}
			phaseID, err := parsePhaseID(args[1])
			if err != nil {
				return err
			}
			t, err := app.Tickets.DeletePhase(ctx, ticketID, phaseID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted phase %d, %s now at %d%%\n", phaseID, t.Title, t.Progress)
			return nil
		},
	}
}
