package upload

import (
	"context"
	"io"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
)

// Submitter sends a validated document to the backend.
type Submitter interface {
	CreateJob(ctx context.Context, req domain.UploadRequest, file io.Reader) (domain.JobHandle, error)
}
