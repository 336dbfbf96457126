package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/scholia/internal/cli/formatter"
	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/service"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTimerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Track time spent on a ticket",
	}

	cmd.AddCommand(
		newTimerStartCmd(app),
		newTimerStopCmd(app),
		newTimerStatusCmd(app),
		newTimerSummaryCmd(app),
		newTimerWatchCmd(app),
	)

	return cmd
}

func newTimerStartCmd(app *App) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "start TICKET",
		Short: "Start the stopwatch on a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ticketID, err := resolveTicketID(ctx, app, args[0])
			if err != nil {
				return err
			}
			entry, err := app.Timers.Start(ctx, ticketID, note)
			if err != nil {
				return err
			}
			title := ticketTitle(ctx, app, entry.TicketID)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimer(entry, title, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "What you are working on")

	return cmd
}

func newTimerStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entry, err := app.Timers.Stop(ctx)
			if err != nil {
				return err
			}
			title := ticketTitle(ctx, app, entry.TicketID)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimer(entry, title, app.now()))
			return nil
		},
	}
}

func newTimerStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entry, err := app.Timers.Active(ctx)
			if errors.Is(err, service.ErrNoActiveTimer) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No timer running."))
				return nil
			}
			if err != nil {
				return err
			}
			title := ticketTitle(ctx, app, entry.TicketID)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimer(entry, title, app.now()))
			return nil
		},
	}
}

func newTimerSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary TICKET",
		Short: "Total time tracked on a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ticketID, err := resolveTicketID(ctx, app, args[0])
			if err != nil {
				return err
			}
			sum, err := app.Timers.Summary(ctx, ticketID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimeSummary(sum, ticketTitle(ctx, app, ticketID)))
			return nil
		},
	}
}

func newTimerWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Show the running timer live; press s to stop it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entry, err := app.Timers.Active(ctx)
			if err != nil {
				return err
			}
			m := newWatchModel(ctx, app.Timers, entry, ticketTitle(ctx, app, entry.TicketID), app.now)
			final, err := tea.NewProgram(m,
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			if err != nil {
				return err
			}
			if wm, ok := final.(watchModel); ok && wm.err != nil {
				return wm.err
			}
			return nil
		},
	}
}

// ticketTitle falls back to the short ID when the ticket cannot be loaded.
func ticketTitle(ctx context.Context, app *App, id string) string {
	t, err := app.Tickets.GetByID(ctx, id)
	if err != nil {
		return formatter.TruncID(id)
	}
	return t.Title
}

// tickMsg refreshes the elapsed time once per second.
type tickMsg time.Time

type timerStoppedMsg struct {
	entry *domain.TimeEntry
	err   error
}

// watchModel renders a running time entry and can stop it.
type watchModel struct {
	ctx    context.Context
	timers service.TimerService
	entry  *domain.TimeEntry
	title  string
	now    func() time.Time

	spin     spinner.Model
	stopping bool
	stopped  bool
	err      error
}

func newWatchModel(ctx context.Context, timers service.TimerService, entry *domain.TimeEntry, title string, now func() time.Time) watchModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = formatter.StyleGreen
	return watchModel{
		ctx:    ctx,
		timers: timers,
		entry:  entry,
		title:  title,
		now:    now,
		spin:   s,
	}
}

func tickEverySecond() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tickEverySecond())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "s":
			if m.stopping || m.stopped {
				return m, nil
			}
			m.stopping = true
			return m, m.stopTimer()
		}
		return m, nil

	case timerStoppedMsg:
		m.stopping = false
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.entry = msg.entry
		m.stopped = true
		return m, tea.Quit

	case tickMsg:
		if m.stopped {
			return m, nil
		}
		return m, tickEverySecond()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) stopTimer() tea.Cmd {
	return func() tea.Msg {
		entry, err := m.timers.Stop(m.ctx)
		return timerStoppedMsg{entry: entry, err: err}
	}
}

func (m watchModel) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("error: "+m.err.Error()) + "\n"
	}
	line := formatter.FormatTimer(m.entry, m.title, m.now())
	if m.stopped {
		return line + "\n"
	}
	return m.spin.View() + " " + line + "\n" + formatter.Dim("s stop · q quit") + "\n"
}
