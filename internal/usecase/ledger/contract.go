package ledger

import (
	"context"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
)

// Source reads and mutates the server-side usage ledger.
type Source interface {
	Dashboard(ctx context.Context, credential string) (domain.Ledger, error)
	ResetUsage(ctx context.Context, credential string) error
}

// Sessions supplies the credential for governance calls.
type Sessions interface {
	Credential() (string, error)
	Downgrade(err error)
}
