package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogUseCaseObserver(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	obs := NewLogUseCaseObserver(zap.New(core))
	ctx := context.Background()

	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "toggle-task", Duration: 3 * time.Millisecond, Success: true, Fields: map[string]any{"auto_filled": 3}})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "generate-plan", Err: errors.New("boom")})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "service_use_case", entries[0].Message)
	assert.Equal(t, "toggle-task", entries[0].ContextMap()["use_case"])
	assert.EqualValues(t, 3, entries[0].ContextMap()["auto_filled"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])

	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop([]UseCaseObserver{nil}))

	a, b := &recordingObserver{}, &recordingObserver{}
	assert.Same(t, a, useCaseObserverOrNoop([]UseCaseObserver{nil, a}))

	both := useCaseObserverOrNoop([]UseCaseObserver{a, nil, b})
	both.ObserveUseCase(context.Background(), UseCaseEvent{Name: "x"})
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}

func TestObserve_CapturesNamedError(t *testing.T) {
	rec := &recordingObserver{}
	run := func() (err error) {
		defer observe(context.Background(), rec, "op", time.Now(), nil, &err)
		return ErrTimerRunning
	}
	require.ErrorIs(t, run(), ErrTimerRunning)
	assert.False(t, rec.last().Success)
	assert.ErrorIs(t, rec.last().Err, ErrTimerRunning)
}
