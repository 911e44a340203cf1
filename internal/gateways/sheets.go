package gateways

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/KiwiAmenazante/DREMO/internal/config"
	"github.com/KiwiAmenazante/DREMO/internal/core/domain"
	"github.com/KiwiAmenazante/DREMO/internal/log"
)

const maskedPlaceholder = "***"

// rowSource abstracts the tabular store read so the scan logic can be tested
// without a live spreadsheet.
type rowSource interface {
	Rows(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
}

// SheetsDirectory looks contacts up in a Google Sheets range. Lookups are
// best effort: configuration gaps and transport failures downgrade to an
// unavailable result instead of failing the request.
type SheetsDirectory struct {
	cfg    config.Directory
	source rowSource
}

// NewSheetsDirectory returns the directory adapter backed by the Sheets API.
func NewSheetsDirectory(cfg config.Directory) *SheetsDirectory {
	return &SheetsDirectory{cfg: cfg, source: &sheetsRowSource{cfg: cfg}}
}

// FindContactForID scans the configured range in storage order and returns
// the first row whose trimmed contact cell starts with the queried ID number.
// Later matching rows are never inspected.
func (d *SheetsDirectory) FindContactForID(ctx context.Context, idNumber string) domain.DirectoryMatch {
	if d.cfg.SpreadsheetID == "" || d.cfg.Range == "" {
		return domain.DirectoryUnavailable("not configured")
	}

	rows, err := d.source.Rows(ctx, d.cfg.SpreadsheetID, d.cfg.Range)
	if err != nil {
		log.Warn(ctx, "directory fetch failed", "err", err)
		return domain.DirectoryUnavailable(err.Error())
	}

	for _, row := range rows {
		contact := strings.TrimSpace(cell(row, d.cfg.ContactColumn))
		if contact == "" {
			continue
		}
		if strings.HasPrefix(contact, idNumber) {
			secret := strings.TrimSpace(cell(row, d.cfg.CodeColumn))
			return domain.DirectoryMatched(maskContact(contact), secret)
		}
	}

	return domain.DirectoryNotMatched()
}

// Ping reports whether the configured range is reachable. Used by the health
// endpoint only.
func (d *SheetsDirectory) Ping(ctx context.Context) error {
	if d.cfg.SpreadsheetID == "" || d.cfg.Range == "" {
		return errors.New("directory not configured")
	}
	_, err := d.source.Rows(ctx, d.cfg.SpreadsheetID, d.cfg.Range)
	return err
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}

// maskContact hides the local part of an address of the form local@domain.
// Strings without a proper local part mask to a fixed placeholder.
func maskContact(contact string) string {
	trimmed := strings.TrimSpace(contact)
	at := strings.Index(trimmed, "@")
	if at <= 0 {
		return maskedPlaceholder
	}

	local := []rune(trimmed[:at])
	domainPart := trimmed[at:]

	if len(local) <= 2 {
		return string(local[0]) + "***" + domainPart
	}
	return string(local[:2]) + "***" + domainPart
}

// sheetsRowSource reads a value range through the Sheets API with readonly
// scope, authenticating with an inline service account JSON or a key file.
type sheetsRowSource struct {
	cfg config.Directory
}

func (s *sheetsRowSource) Rows(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	svc, err := s.service(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, fmt.Sprint(v))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func (s *sheetsRowSource) service(ctx context.Context) (*sheets.Service, error) {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}
	switch {
	case s.cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(s.cfg.CredentialsJSON)))
	case s.cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(s.cfg.CredentialsFile))
	default:
		return nil, errors.New("directory credentials missing (set DREMO_DIRECTORY_CREDENTIALSJSON or DREMO_DIRECTORY_CREDENTIALSFILE)")
	}
	return sheets.NewService(ctx, opts...)
}
