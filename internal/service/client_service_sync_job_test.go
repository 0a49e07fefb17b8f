package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingSyncService struct {
	calls atomic.Int64
}

func (c *countingSyncService) FullSync(context.Context) error {
	c.calls.Add(1)
	return nil
}

func TestClientSyncJob_TicksAndStops(t *testing.T) {
	svc := &countingSyncService{}
	job := NewClientSyncJob(svc)

	job.Start(context.Background(), 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return svc.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	job.Stop()
	after := svc.calls.Load()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, svc.calls.Load())
}

func TestClientSyncJob_RestartReplacesPreviousJob(t *testing.T) {
	svc := &countingSyncService{}
	job := NewClientSyncJob(svc)

	job.Start(context.Background(), time.Hour)
	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return svc.calls.Load() >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestClientSyncJob_StopWithoutStart(t *testing.T) {
	job := NewClientSyncJob(&countingSyncService{})
	job.Stop()
}

func TestClientSyncJob_ContextCancelStopsJob(t *testing.T) {
	svc := &countingSyncService{}
	job := NewClientSyncJob(svc)

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx, 10*time.Millisecond)
	cancel()

	time.Sleep(30 * time.Millisecond)
	after := svc.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, svc.calls.Load())
}
