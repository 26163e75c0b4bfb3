// Package cronrunner runs scheduled jobs with a shared base context.
package cronrunner

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Runner struct {
	cron    *cron.Cron
	logger  *zap.Logger
	baseCtx context.Context
}

// New returns a runner whose specs carry a leading seconds field. Specs are
// read in loc, so "0 0 9 * * *" fires at 09:00 journal time. A nil loc means
// time.Local.
func New(logger *zap.Logger, baseCtx context.Context, loc *time.Location) *Runner {
	if loc == nil {
		loc = time.Local
	}
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cron:    cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		logger:  logger,
		baseCtx: baseCtx,
	}
}

// Add schedules job under spec. name is used in logs only.
func (r *Runner) Add(name, spec string, job func(context.Context)) (cron.EntryID, error) {
	return r.cron.AddFunc(spec, func() {
		if err := r.baseCtx.Err(); err != nil {
			r.logger.Debug("cron job skipped", zap.String("job", name), zap.Error(err))
			return
		}
		r.logger.Debug("cron job running", zap.String("job", name))
		job(r.baseCtx)
	})
}

func (r *Runner) Location() *time.Location {
	return r.cron.Location()
}

// Entries reports how many jobs are scheduled.
func (r *Runner) Entries() int {
	return len(r.cron.Entries())
}

func (r *Runner) Start() {
	r.logger.Info("cron started", zap.Int("jobs", r.Entries()))
	r.cron.Start()
}

// Stop waits for running jobs to finish.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("cron stopped")
}
