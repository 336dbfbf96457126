package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/scholia/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Tickets service.TicketService
	Focus   service.FocusService
	Timers  service.TimerService
	Auth    service.AuthService
	Plans   service.PlanService
	Todos   service.TodoService

	// Interactive enables forms when required flags are missing.
	Interactive bool
	// Serve runs the HTTP API until ctx is cancelled.
	Serve func(ctx context.Context) error
	Now   func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "scholia" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "scholia",
		Short:         "Research ticket tracker with phase progress and daily focus",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Read by main before the command tree is built.
	root.PersistentFlags().String("config", "", "Path to a YAML config file (or SCHOLIA_CONFIG)")

	root.AddCommand(
		newTicketCmd(app),
		newPhaseCmd(app),
		newTaskCmd(app),
		newFocusCmd(app),
		newTimerCmd(app),
		newPlanCmd(app),
		newTodoCmd(app),
		newUserCmd(app),
		newServeCmd(app),
	)

	return root
}
