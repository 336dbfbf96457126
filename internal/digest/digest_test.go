package digest

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/progress"
	"github.com/alexanderramin/scholia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubFocus struct {
	items []progress.FocusItem
	err   error
}

func (s stubFocus) TodaysFocus(context.Context) ([]progress.FocusItem, error) {
	return s.items, s.err
}

func (s stubFocus) RelevantTasks(context.Context, string) ([]domain.Task, error) {
	return nil, nil
}

func TestNew_RejectsBadSchedule(t *testing.T) {
	_, err := New(stubFocus{}, nil, "whenever")
	assert.Error(t, err)
}

func TestRunOnce_LogsEachItem(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	deadline := testutil.Date(2025, 3, 10)
	focus := stubFocus{items: []progress.FocusItem{
		{TicketTitle: "Thesis", Priority: domain.PriorityHigh, Reason: progress.ReasonDueToday,
			Task: domain.Task{Title: "Submit draft", Deadline: &deadline}},
		{TicketTitle: "Survey", Priority: domain.PriorityLow, Reason: progress.ReasonRelevant,
			Task: domain.Task{Title: "Pilot questions"}},
	}}
	d, err := New(focus, zap.New(core), "0 8 * * *")
	require.NoError(t, err)

	require.NoError(t, d.RunOnce(context.Background()))

	items := logs.FilterMessage("focus_item").All()
	require.Len(t, items, 2)
	assert.Equal(t, "Submit draft", items[0].ContextMap()["task"])
	assert.Equal(t, "2025-03-10", items[0].ContextMap()["deadline"])
	assert.Equal(t, "relevant", items[1].ContextMap()["reason"])
	summary := logs.FilterMessage("focus_digest").All()
	require.Len(t, summary, 1)
	assert.EqualValues(t, 2, summary[0].ContextMap()["items"])
}

func TestRunOnce_PropagatesError(t *testing.T) {
	d, err := New(stubFocus{err: errors.New("db closed")}, nil, "@daily")
	require.NoError(t, err)
	assert.ErrorContains(t, d.RunOnce(context.Background()), "db closed")
}

func TestStartStop(t *testing.T) {
	d, err := New(stubFocus{}, nil, "@hourly")
	require.NoError(t, err)
	d.Start(context.Background())
	d.Stop()
}
