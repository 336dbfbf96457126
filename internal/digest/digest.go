// Package digest logs the today's-focus list on a cron schedule.
package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/service"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Digest runs RunOnce on a standard five-field cron schedule.
type Digest struct {
	focus    service.FocusService
	log      *zap.Logger
	schedule cron.Schedule
	cron     *cron.Cron
	timeout  time.Duration
}

func New(focus service.FocusService, log *zap.Logger, spec string) (*Digest, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression '%s': %w", spec, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Digest{
		focus:    focus,
		log:      log,
		schedule: schedule,
		cron:     cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger))),
		timeout:  30 * time.Second,
	}, nil
}

// Start schedules the digest. Runs stop when ctx is cancelled; Stop waits for
// an in-flight run.
func (d *Digest) Start(ctx context.Context) {
	d.cron.Schedule(d.schedule, cron.FuncJob(func() {
		runCtx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()
		if err := d.RunOnce(runCtx); err != nil {
			d.log.Error("focus digest failed", zap.Error(err))
		}
	}))
	d.cron.Start()
	d.log.Info("focus digest scheduled", zap.Time("next_run", d.schedule.Next(time.Now())))
}

func (d *Digest) Stop() {
	<-d.cron.Stop().Done()
}

// RunOnce logs one line per focus item and a summary line.
func (d *Digest) RunOnce(ctx context.Context) error {
	items, err := d.focus.TodaysFocus(ctx)
	if err != nil {
		return fmt.Errorf("loading today's focus: %w", err)
	}
	for i, it := range items {
		fields := []zap.Field{
			zap.Int("rank", i+1),
			zap.String("ticket", it.TicketTitle),
			zap.String("task", it.Task.Title),
			zap.String("reason", string(it.Reason)),
			zap.String("priority", string(it.Priority)),
		}
		if it.Task.Deadline != nil {
			fields = append(fields, zap.String("deadline", it.Task.Deadline.Format(domain.DateLayout)))
		}
		d.log.Info("focus_item", fields...)
	}
	d.log.Info("focus_digest", zap.Int("items", len(items)))
	return nil
}
