package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/KiwiAmenazante/DREMO/internal/config"
	"github.com/KiwiAmenazante/DREMO/internal/core/domain"
	client "github.com/KiwiAmenazante/DREMO/pkg/http"
)

// Decolecta is the fallback identity provider. The API takes a GET with the
// document number as a query parameter and the token in the Authorization
// header, and answers with a flat record instead of an envelope.
type Decolecta struct {
	cfg    config.Decolecta
	client *client.Client
}

// NewDecolecta returns the fallback provider adapter.
func NewDecolecta(cfg config.Decolecta, c *client.Client) *Decolecta {
	return &Decolecta{cfg: cfg, client: c}
}

// Source implements ports.IdentityProvider.
func (g *Decolecta) Source() domain.IdentitySource {
	return domain.SourceFallback
}

type decolectaRecord struct {
	FirstName      string `json:"first_name"`
	FirstLastName  string `json:"first_last_name"`
	SecondLastName string `json:"second_last_name"`
	FullName       string `json:"full_name"`
	DocumentNumber string `json:"document_number"`
}

// Lookup performs a single upstream call and maps the flat record into the
// common identity shape. Decolecta never returns a verification code.
func (g *Decolecta) Lookup(ctx context.Context, idNumber string) (*domain.IdentityFields, error) {
	token := strings.TrimSpace(g.cfg.Token)
	if token == "" {
		return nil, domain.NewConfigurationError("DREMO_DECOLECTA_TOKEN")
	}

	base := strings.TrimSpace(g.cfg.URL)
	if base == "" {
		base = config.DefaultDecolectaURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, domain.NewConfigurationError("DREMO_DECOLECTA_URL")
	}
	q := u.Query()
	q.Set("numero", idNumber)
	u.RawQuery = q.Encode()

	resp, err := g.client.Get(ctx, u.String(), map[string]string{"Authorization": token})
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

	if !resp.OK() {
		var failure struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &failure); err == nil && failure.Message != "" {
			return nil, domain.NewProtocolError(failure.Message)
		}
		return nil, domain.NewProtocolError(fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	var record decolectaRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, domain.NewShapeError()
	}

	return &domain.IdentityFields{
		Number:    strings.TrimSpace(record.DocumentNumber),
		FullName:  collapseSpaces(record.FullName),
		GivenName: collapseSpaces(record.FirstName),
		Surname:   collapseSpaces(record.FirstLastName + " " + record.SecondLastName),
	}, nil
}

// collapseSpaces trims and reduces internal whitespace runs to single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
