package artifact

import (
	"context"
	"io"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
)

// Fetcher retrieves artifact streams from the backend.
type Fetcher interface {
	Artifact(ctx context.Context, jobID string, kind domain.ArtifactKind) (io.ReadCloser, error)
	Preview(ctx context.Context, jobID string, kind domain.ArtifactKind) (io.ReadCloser, error)
}
