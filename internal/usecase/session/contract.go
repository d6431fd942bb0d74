package session

import (
	"context"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
)

// Verifier proves a credential against the backend. The dashboard is the
// cheapest authenticated read, so a successful fetch doubles as login.
type Verifier interface {
	Dashboard(ctx context.Context, credential string) (domain.Ledger, error)
}

// Store persists the admin credential between runs.
type Store interface {
	Get() (domain.Credential, error)
	Set(domain.Credential) error
	Clear() error
}
