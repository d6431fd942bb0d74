package anuvad

import (
	"context"
	"sync"
	"time"
)

// JobStatus fetches a single job snapshot.
func (c *Client) JobStatus(ctx context.Context, jobID string) (Job, error) {
	start := time.Now()

	job, err := c.pollSvc.Get(ctx, jobID)
	c.obs.observe("status", start, err, "job_id", jobID)
	if err != nil {
		return Job{}, err
	}
	return fromDomainJob(job), nil
}

// Watch is an active job watch. Updates is closed when the job reaches a
// terminal status, the watch fails, or Stop is called.
type Watch struct {
	h       watchHandle
	updates chan Job

	stopOnce sync.Once
	done     chan struct{}
}

// Updates returns the stream of job snapshots.
func (w *Watch) Updates() <-chan Job { return w.updates }

// Stop cancels the watch. Idempotent. No further status requests are
// issued after Stop.
func (w *Watch) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.h.Stop()
	})
}

// Err reports the error that ended the watch, if any. Valid after
// Updates is closed.
func (w *Watch) Err() error { return w.h.Err() }

// WatchJob polls the job at a fixed interval until it reaches a terminal
// status. Transient transport failures are absorbed and retried on the
// next tick. Stop the watch to release the polling goroutine early.
func (c *Client) WatchJob(ctx context.Context, jobID string) *Watch {
	w := &Watch{
		h:       c.pollSvc.Watch(ctx, jobID),
		updates: make(chan Job, 1),
		done:    make(chan struct{}),
	}

	go func() {
		defer close(w.updates)
		for job := range w.h.Updates() {
			select {
			case w.updates <- fromDomainJob(job):
			case <-w.done:
				return
			}
		}
	}()
	return w
}
