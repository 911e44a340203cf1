package ports

import (
	"context"

	"github.com/KiwiAmenazante/DREMO/internal/core/domain"
)

// IdentityProvider is the interface implemented by every identity lookup
// adapter. Lookup performs exactly one upstream call and never retries;
// failures are always a *domain.ProviderError.
type IdentityProvider interface {
	Source() domain.IdentitySource
	Lookup(ctx context.Context, idNumber string) (*domain.IdentityFields, error)
}
