package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFileType signals a document that is not a PDF.
	ErrInvalidFileType = errors.New("invalid file type")
	// ErrFileTooLarge signals a document above the upload ceiling.
	ErrFileTooLarge = errors.New("file too large")
	// ErrMissingField signals a missing or unknown upload parameter.
	ErrMissingField = errors.New("missing or invalid field")
	// ErrJobNotFound signals an unknown job identifier.
	ErrJobNotFound = errors.New("job not found")
	// ErrEmptyArtifact signals a successful response with a zero-length body.
	ErrEmptyArtifact = errors.New("empty artifact")
	// ErrUnauthorized signals a 401 from a governance call.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNoSession signals a governance call attempted without a credential.
	ErrNoSession = errors.New("no admin session")
	// ErrWeakPassword signals a new secret below the strength policy.
	ErrWeakPassword = errors.New("weak password")
	// ErrResetNotConfirmed signals a usage reset without caller confirmation.
	ErrResetNotConfirmed = errors.New("usage reset not confirmed")
	// ErrTransport signals a network-level failure (unreachable, timeout).
	ErrTransport = errors.New("backend unreachable")
	// ErrBackend signals a non-success backend response.
	ErrBackend = errors.New("backend error")
)

// BackendError wraps ErrBackend with the HTTP status and the structured
// detail the backend returned, when present.
type BackendError struct {
	StatusCode int
	Detail     string
}

func (e *BackendError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend error %d", e.StatusCode)
}

func (e *BackendError) Unwrap() error { return ErrBackend }

// NewBackendError creates a backend error for a non-success response.
func NewBackendError(statusCode int, detail string) error {
	return &BackendError{StatusCode: statusCode, Detail: detail}
}
