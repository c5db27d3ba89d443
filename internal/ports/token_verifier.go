package ports

import (
	"context"

	"lectern/internal/domain"
)

// TokenVerifier validates identity tokens issued by the external auth
// provider and maps them to a domain user. Issuing tokens is not this
// application's job.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (domain.User, error)
}
