package artifact

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
)

// Service retrieves job artifacts.
type Service struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// New creates a Service.
func New(fetcher Fetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fetcher: fetcher, logger: logger}
}

// Fetch opens the artifact stream. The caller owns the stream.
func (s *Service) Fetch(ctx context.Context, jobID string, kind domain.ArtifactKind) (io.ReadCloser, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown artifact kind %q: %w", kind, domain.ErrMissingField)
	}
	return s.fetcher.Artifact(ctx, jobID, kind)
}

// Preview opens the inline preview stream. The caller owns the stream.
func (s *Service) Preview(ctx context.Context, jobID string, kind domain.ArtifactKind) (io.ReadCloser, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown artifact kind %q: %w", kind, domain.ErrMissingField)
	}
	return s.fetcher.Preview(ctx, jobID, kind)
}

// SaveTo downloads the artifact to path and returns the byte count.
// A stream that yields zero bytes is a failure; the partial file is
// removed so an empty PDF never lands on disk.
func (s *Service) SaveTo(ctx context.Context, jobID string, kind domain.ArtifactKind, path string) (int64, error) {
	rc, err := s.Fetch(ctx, jobID, kind)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	out, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}

	n, err := io.Copy(out, rc)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	if n == 0 {
		os.Remove(path)
		return 0, fmt.Errorf("%s artifact for job %s: %w", kind, jobID, domain.ErrEmptyArtifact)
	}

	s.logger.Info("artifact saved",
		zap.String("job_id", jobID),
		zap.String("kind", string(kind)),
		zap.String("path", path),
		zap.Int64("bytes", n),
	)
	return n, nil
}
