package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/scholia/internal/service"
	"github.com/alexanderramin/scholia/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatch(t *testing.T) (*App, *teatest.Driver) {
	t.Helper()
	app, _ := testApp(t)
	ticket, _ := seedTicket(t, app)
	ctx := context.Background()

	entry, err := app.Timers.Start(ctx, ticket.ID, "reading")
	require.NoError(t, err)

	now := func() time.Time { return entry.StartedAt.Add(90 * time.Second) }
	m := newWatchModel(ctx, app.Timers, entry, ticket.Title, now)
	d := teatest.New(t, m, teatest.WithSize(80, 24))
	d.DrainInit()
	return app, d
}

func TestWatchModel_RendersElapsedAndKeepsTicking(t *testing.T) {
	_, d := startWatch(t)

	view := d.View()
	assert.Contains(t, view, "Sleep and memory")
	assert.Contains(t, view, "running")
	assert.Contains(t, view, "s stop")
	assert.Positive(t, d.Pending, "clock and spinner stay armed")

	d.Send(tickMsg(time.Now()))
	assert.False(t, d.Quitting)
}

func TestWatchModel_StopKeyStopsTimer(t *testing.T) {
	app, d := startWatch(t)

	d.PressKey('s')

	assert.True(t, d.Quitting)
	wm := d.Model.(watchModel)
	assert.True(t, wm.stopped)
	require.NoError(t, wm.err)
	assert.Contains(t, d.View(), "stopped")

	_, err := app.Timers.Active(context.Background())
	assert.ErrorIs(t, err, service.ErrNoActiveTimer)
}

func TestWatchModel_QuitLeavesTimerRunning(t *testing.T) {
	for _, press := range []func(*teatest.Driver){
		func(d *teatest.Driver) { d.PressKey('q') },
		func(d *teatest.Driver) { d.PressEsc() },
		func(d *teatest.Driver) { d.PressCtrlC() },
	} {
		app, d := startWatch(t)
		press(d)
		assert.True(t, d.Quitting)

		active, err := app.Timers.Active(context.Background())
		require.NoError(t, err)
		assert.True(t, active.Running())
	}
}

func TestWatchModel_StopErrorIsReported(t *testing.T) {
	app, d := startWatch(t)
	_, err := app.Timers.Stop(context.Background())
	require.NoError(t, err)

	d.PressKey('s')

	assert.True(t, d.Quitting)
	wm := d.Model.(watchModel)
	assert.ErrorIs(t, wm.err, service.ErrNoActiveTimer)
	assert.Contains(t, d.View(), "error:")
}

func TestWatchModel_TickAfterStopDoesNotRearm(t *testing.T) {
	m := watchModel{stopped: true}
	_, cmd := m.Update(tickMsg(time.Now()))
	assert.Nil(t, cmd)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	assert.Nil(t, cmd)
}
