package ledger

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
)

// Service maintains a read model of the server usage ledger. The server
// is the single source of truth; every Load replaces the local snapshot
// wholesale, no local arithmetic.
type Service struct {
	source   Source
	sessions Sessions
	logger   *zap.Logger

	mu       sync.Mutex
	snapshot domain.Ledger
	loaded   bool
}

// New creates a Service.
func New(source Source, sessions Sessions, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, sessions: sessions, logger: logger}
}

// Load fetches the dashboard and replaces the cached snapshot. A 401
// additionally downgrades the stored session.
func (s *Service) Load(ctx context.Context) (domain.Ledger, error) {
	cred, err := s.sessions.Credential()
	if err != nil {
		return domain.Ledger{}, err
	}

	ledger, err := s.source.Dashboard(ctx, cred)
	if err != nil {
		s.sessions.Downgrade(err)
		return domain.Ledger{}, err
	}

	s.mu.Lock()
	s.snapshot = ledger
	s.loaded = true
	s.mu.Unlock()
	return ledger, nil
}

// Snapshot returns the last loaded ledger. ok is false before the first
// successful Load.
func (s *Service) Snapshot() (domain.Ledger, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot, s.loaded
}

// Reset zeroes the server ledger and immediately reloads, so the caller
// always observes post-reset server state rather than a local guess.
// The confirmation flag must be set; the operation is irreversible.
func (s *Service) Reset(ctx context.Context, confirmed bool) (domain.Ledger, error) {
	if !confirmed {
		return domain.Ledger{}, domain.ErrResetNotConfirmed
	}

	cred, err := s.sessions.Credential()
	if err != nil {
		return domain.Ledger{}, err
	}

	if err := s.source.ResetUsage(ctx, cred); err != nil {
		s.sessions.Downgrade(err)
		return domain.Ledger{}, err
	}
	s.logger.Info("usage ledger reset")

	return s.Load(ctx)
}
