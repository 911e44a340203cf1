package ports

import (
	"context"

	"github.com/KiwiAmenazante/DREMO/internal/core/domain"
)

// DirectoryService searches the contact directory for a record correlated to
// an ID number. The search is best effort: every failure mode is folded into
// the returned DirectoryMatch, never into an error.
type DirectoryService interface {
	FindContactForID(ctx context.Context, idNumber string) domain.DirectoryMatch
}
