package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KiwiAmenazante/DREMO/internal/core/domain"
)

type stubProvider struct {
	source domain.IdentitySource
	fields *domain.IdentityFields
	err    *domain.ProviderError
	calls  int
}

func (s *stubProvider) Source() domain.IdentitySource {
	return s.source
}

func (s *stubProvider) Lookup(_ context.Context, _ string) (*domain.IdentityFields, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.fields, nil
}

func TestIdentityResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("primary success never invokes the fallback", func(t *testing.T) {
		primary := &stubProvider{
			source: domain.SourcePrimary,
			fields: &domain.IdentityFields{GivenName: "JUAN", Surname: "PEREZ GOMEZ"},
		}
		fallback := &stubProvider{source: domain.SourceFallback}

		resolved, err := NewIdentityResolver(primary, fallback).Resolve(ctx, "12345678")
		require.NoError(t, err)

		assert.Equal(t, domain.SourcePrimary, resolved.Source)
		assert.Equal(t, "JUAN", resolved.Fields.GivenName)
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, 0, fallback.calls)
	})

	t.Run("fallback wins after primary failure", func(t *testing.T) {
		primary := &stubProvider{
			source: domain.SourcePrimary,
			err:    domain.NewProtocolError("HTTP 503"),
		}
		fallback := &stubProvider{
			source: domain.SourceFallback,
			fields: &domain.IdentityFields{GivenName: "JUAN", Surname: "PEREZ GOMEZ"},
		}

		resolved, err := NewIdentityResolver(primary, fallback).Resolve(ctx, "12345678")
		require.NoError(t, err)

		assert.Equal(t, domain.SourceFallback, resolved.Source)
		assert.Equal(t, "PEREZ GOMEZ", resolved.Fields.Surname)
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, 1, fallback.calls)
	})

	t.Run("fields are never merged across providers", func(t *testing.T) {
		primary := &stubProvider{
			source: domain.SourcePrimary,
			err:    domain.NewNetworkError(assert.AnError),
		}
		fallback := &stubProvider{
			source: domain.SourceFallback,
			fields: &domain.IdentityFields{GivenName: "MARIA"},
		}

		resolved, err := NewIdentityResolver(primary, fallback).Resolve(ctx, "12345678")
		require.NoError(t, err)
		assert.Empty(t, resolved.Fields.VerificationCode)
		assert.Equal(t, "MARIA", resolved.Fields.GivenName)
	})
}

func TestIdentityResolver_Resolve_AllProvidersFail(t *testing.T) {
	type expected struct {
		reason string
	}
	type testConfig struct {
		name           string
		primaryReason  string
		fallbackReason string
		expected       expected
	}

	for _, tc := range []testConfig{
		{
			name:           "primary reason takes priority",
			primaryReason:  "primary exploded",
			fallbackReason: "fallback exploded",
			expected:       expected{reason: "primary exploded"},
		},
		{
			name:           "fallback reason when primary is empty",
			primaryReason:  "",
			fallbackReason: "fallback exploded",
			expected:       expected{reason: "fallback exploded"},
		},
		{
			name:           "generic reason when both are empty",
			primaryReason:  "",
			fallbackReason: "",
			expected:       expected{reason: "upstream error"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			primary := &stubProvider{
				source: domain.SourcePrimary,
				err:    domain.NewProtocolError(tc.primaryReason),
			}
			fallback := &stubProvider{
				source: domain.SourceFallback,
				err:    domain.NewProtocolError(tc.fallbackReason),
			}

			resolved, err := NewIdentityResolver(primary, fallback).Resolve(context.Background(), "12345678")
			require.Nil(t, resolved)

			var resErr *domain.ResolutionError
			require.ErrorAs(t, err, &resErr)
			assert.Equal(t, tc.expected.reason, resErr.Reason)
			assert.Equal(t, 1, primary.calls)
			assert.Equal(t, 1, fallback.calls)
		})
	}
}
