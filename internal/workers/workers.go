package workers

import (
	"context"
	"time"

	"github.com/avoronov/go-cv-builder/internal/config"
	"github.com/avoronov/go-cv-builder/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the client's background jobs. Currently that is the
// periodic document sync job.
func NewWorkers(ctx context.Context, services *service.ClientServices, cfg config.ClientWorkers) *Workers {
	return &Workers{
		workers: []Worker{
			newSyncWorker(ctx, services.SyncJob, cfg.SyncInterval),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop terminates workers in reverse start order and waits for each one.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

// syncWorker adapts the client sync job to the Worker interface.
type syncWorker struct {
	ctx      context.Context
	job      service.ClientSyncJob
	interval time.Duration
}

func newSyncWorker(ctx context.Context, job service.ClientSyncJob, interval time.Duration) *syncWorker {
	return &syncWorker{ctx: ctx, job: job, interval: interval}
}

func (s *syncWorker) Run() {
	s.job.Start(s.ctx, s.interval)
}

func (s *syncWorker) Stop() {
	s.job.Stop()
}
