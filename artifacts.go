package anuvad

import (
	"context"
	"io"
	"time"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
)

// Artifact opens the result stream for a completed job. A backend
// response with an empty body is an error, never an empty file. The
// caller owns the returned stream.
func (c *Client) Artifact(ctx context.Context, jobID string, kind ArtifactKind) (io.ReadCloser, error) {
	start := time.Now()

	rc, err := c.artifactSvc.Fetch(ctx, jobID, domain.ArtifactKind(kind))
	c.obs.observe("artifact", start, err, "job_id", jobID, "kind", string(kind))
	return rc, err
}

// Preview opens the inline preview stream. Read-only; may be called
// while the job is still being watched.
func (c *Client) Preview(ctx context.Context, jobID string, kind ArtifactKind) (io.ReadCloser, error) {
	start := time.Now()

	rc, err := c.artifactSvc.Preview(ctx, jobID, domain.ArtifactKind(kind))
	c.obs.observe("preview", start, err, "job_id", jobID, "kind", string(kind))
	return rc, err
}

// SaveArtifact downloads the artifact to path and returns the number of
// bytes written. Zero-byte downloads fail with ErrEmptyArtifact and
// leave no file behind.
func (c *Client) SaveArtifact(ctx context.Context, jobID string, kind ArtifactKind, path string) (int64, error) {
	start := time.Now()

	n, err := c.artifactSvc.SaveTo(ctx, jobID, domain.ArtifactKind(kind), path)
	c.obs.observe("save_artifact", start, err,
		"job_id", jobID, "kind", string(kind), "bytes", n)
	return n, err
}
