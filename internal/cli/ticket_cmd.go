package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/scholia/internal/cli/formatter"
	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/spf13/cobra"
)

func newTicketCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ticket",
		Aliases: []string{"project"},
		Short:   "Manage research tickets",
	}

	cmd.AddCommand(
		newTicketNewCmd(app),
		newTicketListCmd(app),
		newTicketShowCmd(app),
		newTicketUpdateCmd(app),
		newTicketRemoveCmd(app),
	)

	return cmd
}

func newTicketNewCmd(app *App) *cobra.Command {
	var v ticketFormValues
	var phases []string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a ticket",
		Long: `Create a ticket. Phases are given as NAME[:START[:END]] with dates in
YYYY-MM-DD form and are numbered in the order given.

Without --title on an interactive terminal a form asks for the details.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v.Title == "" {
				if !app.Interactive {
					return fmt.Errorf("--title is required")
				}
				if err := ticketForm(&v).Run(); err != nil {
					return err
				}
			}

			t, err := v.toTicket()
			if err != nil {
				return err
			}
			for _, spec := range phases {
				p, err := parsePhaseSpec(spec)
				if err != nil {
					return err
				}
				p.ID = t.NextPhaseID()
				t.Phases = append(t.Phases, p)
			}

			if err := app.Tickets.Create(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created ticket %s %s\n", t.Title, formatter.TruncID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&v.Title, "title", "", "Ticket title")
	cmd.Flags().StringVar(&v.Description, "description", "", "Free-form description")
	cmd.Flags().StringVar(&v.Priority, "priority", "", "Low, Medium or High (default Medium)")
	cmd.Flags().StringVar(&v.Deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&v.Hours, "hours", "", "Estimated hours")
	cmd.Flags().StringArrayVar(&phases, "phase", nil, "Phase as NAME[:START[:END]] (repeatable)")

	return cmd
}

func (v ticketFormValues) toTicket() (*domain.Ticket, error) {
	priority, err := domain.ParsePriority(v.Priority)
	if err != nil {
		return nil, err
	}
	deadline, err := parseDateFlag("deadline", v.Deadline)
	if err != nil {
		return nil, err
	}
	var hours float64
	if v.Hours != "" {
		hours, err = strconv.ParseFloat(v.Hours, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --hours %q", v.Hours)
		}
	}
	return &domain.Ticket{
		Title:          v.Title,
		Description:    v.Description,
		Priority:       priority,
		Deadline:       deadline,
		EstimatedHours: hours,
	}, nil
}

func parsePhaseSpec(spec string) (domain.Phase, error) {
	parts := strings.Split(spec, ":")
	if len(parts) > 3 || strings.TrimSpace(parts[0]) == "" {
		return domain.Phase{}, fmt.Errorf("invalid --phase %q: use NAME[:START[:END]]", spec)
	}
	p := domain.Phase{Name: strings.TrimSpace(parts[0])}
	if len(parts) > 1 {
		start, err := parseDateFlag("phase", parts[1])
		if err != nil {
			return domain.Phase{}, err
		}
		if start != nil {
			p.StartDate = *start
		}
	}
	if len(parts) > 2 {
		end, err := parseDateFlag("phase", parts[2])
		if err != nil {
			return domain.Phase{}, err
		}
		if end != nil {
			p.EndDate = *end
		}
	}
	return p, nil
}

func newTicketListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			tickets, err := app.Tickets.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(tickets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tickets found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTicketList(tickets, app.now()))
			return nil
		},
	}
}

func newTicketShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a ticket with its phases and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTicketID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tickets.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTicketDetail(t, app.now()))
			return nil
		},
	}
}

func newTicketUpdateCmd(app *App) *cobra.Command {
	var title, description, priority, status, deadline string
	var hours float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a ticket's own fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTicketID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tickets.GetByID(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				t.Title = title
			}
			if flags.Changed("description") {
				t.Description = description
			}
			if flags.Changed("priority") {
				if t.Priority, err = domain.ParsePriority(priority); err != nil {
					return err
				}
			}
			if flags.Changed("status") {
				t.Status = domain.TicketStatus(strings.ToLower(status))
			}
			if flags.Changed("deadline") {
				if t.Deadline, err = parseDateFlag("deadline", deadline); err != nil {
					return err
				}
			}
			if flags.Changed("hours") {
				t.EstimatedHours = hours
			}

			if err := app.Tickets.Update(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated ticket %s\n", t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&priority, "priority", "", "Low, Medium or High")
	cmd.Flags().StringVar(&status, "status", "", "planned, in-progress or completed")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD, empty clears)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated hours")

	return cmd
}

func newTicketRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a ticket with its phases, tasks and time entries",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTicketID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tickets.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted ticket %s\n", formatter.TruncID(id))
			return nil
		},
	}
}
