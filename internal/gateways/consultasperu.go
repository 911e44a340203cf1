// Package gateways contains the adapters for the external services the
// platform talks to: the two identity providers and the contact directory.
package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KiwiAmenazante/DREMO/internal/config"
	"github.com/KiwiAmenazante/DREMO/internal/core/domain"
	client "github.com/KiwiAmenazante/DREMO/pkg/http"
)

// ConsultasPeru is the primary identity provider. The API takes a POST with
// the token inside the JSON payload and wraps the record in a
// success/message/data envelope.
type ConsultasPeru struct {
	cfg    config.ConsultasPeru
	client *client.Client
}

// NewConsultasPeru returns the primary provider adapter.
func NewConsultasPeru(cfg config.ConsultasPeru, c *client.Client) *ConsultasPeru {
	return &ConsultasPeru{cfg: cfg, client: c}
}

// Source implements ports.IdentityProvider.
func (g *ConsultasPeru) Source() domain.IdentitySource {
	return domain.SourcePrimary
}

type consultasPeruEnvelope struct {
	Success *bool                  `json:"success"`
	Message string                 `json:"message"`
	Data    *domain.IdentityFields `json:"data"`
}

// Lookup performs a single upstream call. It never retries and never panics
// past this boundary; every failure is a *domain.ProviderError.
func (g *ConsultasPeru) Lookup(ctx context.Context, idNumber string) (*domain.IdentityFields, error) {
	apiURL := strings.TrimSpace(g.cfg.URL)
	token := strings.TrimSpace(g.cfg.Token)
	if apiURL == "" {
		return nil, domain.NewConfigurationError("DREMO_CONSULTASPERU_URL")
	}
	if token == "" {
		return nil, domain.NewConfigurationError("DREMO_CONSULTASPERU_TOKEN")
	}

	payload, err := json.Marshal(map[string]string{
		"token":           token,
		"type_document":   "dni",
		"document_number": idNumber,
	})
	if err != nil {
		return nil, domain.NewShapeError()
	}

	resp, err := g.client.Post(ctx, apiURL, payload, nil)
	if err != nil {
		return nil, domain.NewNetworkError(err)
	}

	body := resp.Body
	if len(strings.TrimSpace(string(body))) == 0 {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		return nil, domain.NewNonJSONError(resp.StatusCode)
	}

	var envelope consultasPeruEnvelope
	parseErr := json.Unmarshal(body, &envelope)

	if !resp.OK() {
		if parseErr == nil && envelope.Message != "" {
			return nil, domain.NewProtocolError(envelope.Message)
		}
		return nil, domain.NewProtocolError(fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	if parseErr != nil || envelope.Success == nil {
		return nil, domain.NewShapeError()
	}
	if !*envelope.Success {
		if envelope.Message != "" {
			return nil, domain.NewProtocolError(envelope.Message)
		}
		return nil, domain.NewProtocolError("upstream error")
	}

	if envelope.Data == nil {
		return &domain.IdentityFields{}, nil
	}
	return envelope.Data, nil
}
