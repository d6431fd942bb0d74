package anuvad

import "github.com/anuvad-labs/anuvad-go/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidFileType   = domain.ErrInvalidFileType
	ErrFileTooLarge      = domain.ErrFileTooLarge
	ErrMissingField      = domain.ErrMissingField
	ErrJobNotFound       = domain.ErrJobNotFound
	ErrEmptyArtifact     = domain.ErrEmptyArtifact
	ErrUnauthorized      = domain.ErrUnauthorized
	ErrNoSession         = domain.ErrNoSession
	ErrWeakPassword      = domain.ErrWeakPassword
	ErrResetNotConfirmed = domain.ErrResetNotConfirmed
	ErrTransport         = domain.ErrTransport
	ErrBackend           = domain.ErrBackend
)
