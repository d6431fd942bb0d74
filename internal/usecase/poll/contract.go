package poll

import (
	"context"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
)

// StatusReader queries the backend for a job snapshot.
type StatusReader interface {
	JobStatus(ctx context.Context, jobID string) (domain.Job, error)
}
