// Package tasks runs small periodic maintenance jobs on their own tickers.
package tasks

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Job is one periodic task.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Runner owns a set of jobs and their goroutines.
type Runner struct {
	jobs []Job
	log  *zap.Logger
}

// NewRunner constructs an empty Runner.
func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{log: logger}
}

// Add registers a job. Must be called before Start.
func (r *Runner) Add(j Job) {
	r.jobs = append(r.jobs, j)
}

// Start launches one goroutine per job. Jobs stop when ctx is cancelled.
// Job errors are logged and do not stop the ticker.
func (r *Runner) Start(ctx context.Context) {
	for _, j := range r.jobs {
		go r.loop(ctx, j)
	}
}

func (r *Runner) loop(ctx context.Context, j Job) {
	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				r.log.Error("job failed", zap.String("job", j.Name), zap.Error(err))
			}
		}
	}
}
