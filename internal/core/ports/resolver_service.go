package ports

import (
	"context"

	"github.com/KiwiAmenazante/DREMO/internal/core/domain"
)

// ResolverService obtains one authoritative identity record by trying
// providers in priority order. The error, when non-nil, is always a
// *domain.ResolutionError.
type ResolverService interface {
	Resolve(ctx context.Context, idNumber string) (*domain.ResolvedIdentity, error)
}
