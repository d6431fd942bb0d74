package session

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
)

// Manager owns the admin session lifecycle.
type Manager struct {
	verifier Verifier
	store    Store
	logger   *zap.Logger
}

// NewManager creates a Manager.
func NewManager(verifier Verifier, store Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{verifier: verifier, store: store, logger: logger}
}

// Login encodes the credential, verifies it with an authenticated
// dashboard read and persists it on success. Nothing is stored when the
// backend rejects the credential.
func (m *Manager) Login(ctx context.Context, username, password string) (domain.Ledger, error) {
	cred := domain.NewCredential(username, password)

	ledger, err := m.verifier.Dashboard(ctx, cred.Token)
	if err != nil {
		return domain.Ledger{}, err
	}

	if err := m.store.Set(cred); err != nil {
		return domain.Ledger{}, err
	}
	m.logger.Info("admin session established", zap.String("username", username))
	return ledger, nil
}

// Logout discards the stored credential. Logging out when no session
// exists is not an error.
func (m *Manager) Logout() error {
	return m.store.Clear()
}

// Credential returns the stored credential token, or ErrNoSession.
func (m *Manager) Credential() (string, error) {
	cred, err := m.store.Get()
	if err != nil {
		return "", err
	}
	if cred.Token == "" {
		return "", domain.ErrNoSession
	}
	return cred.Token, nil
}

// Downgrade clears the session when err proves the stored credential is
// stale. Any other error leaves the session untouched.
func (m *Manager) Downgrade(err error) {
	if !errors.Is(err, domain.ErrUnauthorized) {
		return
	}
	if clearErr := m.store.Clear(); clearErr != nil {
		m.logger.Warn("failed to clear stale session", zap.Error(clearErr))
		return
	}
	m.logger.Info("stale admin session cleared")
}
