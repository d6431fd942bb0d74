package upload

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
)

// Service handles document submission.
type Service struct {
	submitter Submitter
	maxBytes  int64
	logger    *zap.Logger
}

// New creates a Service. maxBytes lowers the client-side size ceiling;
// values of zero or above the backend cap fall back to the cap.
func New(submitter Submitter, maxBytes int64, logger *zap.Logger) *Service {
	if maxBytes <= 0 || maxBytes > domain.MaxUploadBytes {
		maxBytes = domain.MaxUploadBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{submitter: submitter, maxBytes: maxBytes, logger: logger}
}

// Submit validates the request locally and, only if every check passes,
// streams the document to the backend. Validation failures never touch
// the network.
func (s *Service) Submit(ctx context.Context, req domain.UploadRequest, file io.Reader) (domain.JobHandle, error) {
	if err := req.Validate(); err != nil {
		return domain.JobHandle{}, err
	}
	if req.Size > s.maxBytes {
		return domain.JobHandle{}, fmt.Errorf("document is %d bytes, configured ceiling is %d: %w",
			req.Size, s.maxBytes, domain.ErrFileTooLarge)
	}

	br := bufio.NewReader(file)
	head, err := br.Peek(5)
	if err != nil && err != io.EOF {
		return domain.JobHandle{}, err
	}
	if err := domain.SniffPDF(head); err != nil {
		return domain.JobHandle{}, err
	}

	handle, err := s.submitter.CreateJob(ctx, req, br)
	if err != nil {
		return domain.JobHandle{}, err
	}

	s.logger.Info("job submitted",
		zap.String("job_id", handle.JobID),
		zap.String("filename", req.Filename),
		zap.String("language", string(req.Language)),
		zap.String("direction", string(req.Direction)),
	)
	return handle, nil
}
