package services

import (
	"context"

	"github.com/KiwiAmenazante/DREMO/internal/core/domain"
	"github.com/KiwiAmenazante/DREMO/internal/core/ports"
	"github.com/KiwiAmenazante/DREMO/internal/log"
)

// IdentityResolver tries providers in priority order and returns the first
// successful lookup. Adding a provider is a constructor change only.
type IdentityResolver struct {
	providers []ports.IdentityProvider
}

// NewIdentityResolver builds a resolver over the given providers. Order is
// priority order: the first provider is only ever skipped, never overtaken.
func NewIdentityResolver(providers ...ports.IdentityProvider) *IdentityResolver {
	return &IdentityResolver{providers: providers}
}

// Resolve calls providers sequentially until one succeeds. A later provider
// is invoked only after every earlier one has failed, so the common success
// path costs a single upstream call. Fields are never merged across
// providers. When all providers fail, the returned *domain.ResolutionError
// carries the first non-empty failure reason in priority order.
func (r *IdentityResolver) Resolve(ctx context.Context, idNumber string) (*domain.ResolvedIdentity, error) {
	var firstReason string

	for _, p := range r.providers {
		fields, err := p.Lookup(ctx, idNumber)
		if err == nil {
			return &domain.ResolvedIdentity{Source: p.Source(), Fields: *fields}, nil
		}

		log.Warn(ctx, "identity provider failed", "source", p.Source(), "reason", err.Error())
		if firstReason == "" {
			firstReason = err.Error()
		}
	}

	if firstReason == "" {
		firstReason = "upstream error"
	}
	return nil, &domain.ResolutionError{Reason: firstReason}
}
