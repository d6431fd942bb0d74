package poll

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
	"github.com/anuvad-labs/anuvad-go/internal/metrics"
)

// Service polls job status at a fixed interval.
type Service struct {
	reader   StatusReader
	interval time.Duration
	logger   *zap.Logger
}

// New creates a Service. interval <= 0 falls back to 2 seconds.
func New(reader StatusReader, interval time.Duration, logger *zap.Logger) *Service {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{reader: reader, interval: interval, logger: logger}
}

// Handle controls an active watch. Updates is closed when the watch
// ends, either on a terminal status, an unrecoverable error, or Stop.
type Handle struct {
	updates chan domain.Job
	cancel  context.CancelFunc

	mu  sync.Mutex
	err error
}

// Updates returns the stream of job snapshots.
func (h *Handle) Updates() <-chan domain.Job { return h.updates }

// Stop cancels the watch. Idempotent. No further status queries are
// issued once Stop returns and the updates channel has drained.
func (h *Handle) Stop() { h.cancel() }

// Err reports the error that ended the watch, if any. Valid after
// Updates is closed. A terminal status or Stop leaves it nil.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *Handle) setErr(err error) {
	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
}

// Get fetches a single job snapshot without starting a watch.
func (s *Service) Get(ctx context.Context, jobID string) (domain.Job, error) {
	return s.reader.JobStatus(ctx, jobID)
}

// Watch polls the job until it reaches a terminal status or the watch is
// stopped. Transient transport failures are logged and absorbed; the
// next tick retries. Cancellation wins over any in-flight response, so
// a snapshot that arrives after Stop is discarded, never delivered.
func (s *Service) Watch(ctx context.Context, jobID string) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		updates: make(chan domain.Job, 1),
		cancel:  cancel,
	}
	go s.run(ctx, jobID, h)
	return h
}

func (s *Service) run(ctx context.Context, jobID string, h *Handle) {
	defer close(h.updates)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		job, err := s.reader.JobStatus(ctx, jobID)
		if ctx.Err() != nil {
			return
		}

		switch {
		case errors.Is(err, domain.ErrTransport):
			metrics.PollTicksTotal.WithLabelValues("transport_error").Inc()
			s.logger.Warn("status poll failed, will retry",
				zap.String("job_id", jobID),
				zap.Error(err),
			)
		case err != nil:
			h.setErr(err)
			return
		default:
			outcome := "update"
			if job.Status.IsTerminal() {
				outcome = "terminal"
			}
			metrics.PollTicksTotal.WithLabelValues(outcome).Inc()

			select {
			case h.updates <- job:
			case <-ctx.Done():
				return
			}
			if job.Status.IsTerminal() {
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
