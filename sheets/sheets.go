// Package sheets implements harvest.Sink on top of the Google Sheets API.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/harvest"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Environment variables read by LoadConfig.
const (
	CredentialsEnv   = "GOOGLE_SERVICE_ACCOUNT_JSON"
	SpreadsheetIDEnv = "GOOGLE_SHEET_ID"
)

// ValueInputOption stores cell values as given, without formula parsing.
const ValueInputOption = "RAW"

// Config holds the destination spreadsheet and the service account used to
// write to it. It is built once at process start.
type Config struct {
	// CredentialsJSON is the service account key file content.
	CredentialsJSON string

	SpreadsheetID string
}

// LoadConfig reads Config from the environment through getenv.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		CredentialsJSON: getenv(CredentialsEnv),
		SpreadsheetID:   getenv(SpreadsheetIDEnv),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate returns an error if the config is incomplete.
func (c Config) Validate() error {
	if c.CredentialsJSON == "" {
		return harvest.Errorf(harvest.EINVALID, "%s required", CredentialsEnv)
	}
	if !json.Valid([]byte(c.CredentialsJSON)) {
		return harvest.Errorf(harvest.EINVALID, "%s is not valid JSON", CredentialsEnv)
	}
	if c.SpreadsheetID == "" {
		return harvest.Errorf(harvest.EINVALID, "%s required", SpreadsheetIDEnv)
	}
	return nil
}

// Ensure Sink implements harvest.Sink.
var _ harvest.Sink = (*Sink)(nil)

// Sink appends rows to tabs of a single spreadsheet.
type Sink struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
}

// NewSink creates a Sheets client authenticated with the config's service
// account. Extra options are applied after the credentials.
func NewSink(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Sink, error) {
	if cfg.SpreadsheetID == "" {
		return nil, harvest.Errorf(harvest.EINVALID, "%s required", SpreadsheetIDEnv)
	}

	clientOpts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if cfg.CredentialsJSON != "" {
		clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}
	clientOpts = append(clientOpts, opts...)

	srv, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Sink{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
	}, nil
}

// Append adds rows after the last row of the table's data in columnRange.
func (s *Sink) Append(ctx context.Context, table, columnRange string, rows [][]string) error {
	if table == "" {
		return harvest.Errorf(harvest.EINVALID, "table required")
	}
	if len(rows) == 0 {
		return nil
	}

	vr := &sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         make([][]any, len(rows)),
	}
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, c := range row {
			cells[j] = c
		}
		vr.Values[i] = cells
	}

	_, err := s.values.Append(s.spreadsheetID, A1Range(table, columnRange), vr).
		ValueInputOption(ValueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", table, err)
	}
	return nil
}

// A1Range joins a tab name and column range into A1 notation, e.g.
// "Research!A:J". Tab names containing spaces or quotes are quoted.
func A1Range(table, columnRange string) string {
	name := table
	if needsQuoting(table) {
		name = "'" + strings.ReplaceAll(table, "'", "''") + "'"
	}
	if columnRange == "" {
		return name
	}
	return name + "!" + columnRange
}

func needsQuoting(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_') {
			return true
		}
	}
	return false
}
