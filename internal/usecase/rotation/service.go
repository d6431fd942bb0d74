package rotation

import (
	"context"
	"fmt"
	"unicode"

	"go.uber.org/zap"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
)

const minPasswordLen = 8

// Service rotates the admin secret.
type Service struct {
	rotator  Rotator
	sessions Sessions
	logger   *zap.Logger
}

// New creates a Service.
func New(rotator Rotator, sessions Sessions, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{rotator: rotator, sessions: sessions, logger: logger}
}

// CheckPolicy validates a candidate secret: at least 8 characters with
// at least one letter and one digit.
func CheckPolicy(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w",
			minPasswordLen, domain.ErrWeakPassword)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password needs at least one letter and one digit: %w",
			domain.ErrWeakPassword)
	}
	return nil
}

// Rotate changes the admin secret. The policy is checked before any
// network call. On success the stored session is discarded regardless of
// which username it carried, forcing a fresh login under the new secret.
// On failure the stored session is left untouched.
func (s *Service) Rotate(ctx context.Context, currentPassword, newPassword string) error {
	if err := CheckPolicy(newPassword); err != nil {
		return err
	}

	cred, err := s.sessions.Credential()
	if err != nil {
		return err
	}

	if err := s.rotator.ChangePassword(ctx, cred, currentPassword, newPassword); err != nil {
		return err
	}

	if err := s.sessions.Logout(); err != nil {
		s.logger.Warn("secret rotated but session cleanup failed", zap.Error(err))
		return fmt.Errorf("clear session after rotation: %w", err)
	}
	s.logger.Info("admin secret rotated, session retired")
	return nil
}
