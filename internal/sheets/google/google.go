// Package google implements the ValuesAPI port against the Google
// Sheets v4 API using service account credentials.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	ports "paytrack/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	timeout       time.Duration
}

var _ ports.ValuesAPI = (*Client)(nil)

// Options configures the Sheets client. Exactly one credential source
// is required: inline JSON, a key file, or the standard
// GOOGLE_APPLICATION_CREDENTIALS path.
type Options struct {
	SpreadsheetID   string
	CredentialsJSON string
	CredentialsFile string
	Timeout         time.Duration
}

func New(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	svc, err := newSheetsService(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		timeout:       timeout,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials, resolved inline JSON first, then key file, then the
// GOOGLE_APPLICATION_CREDENTIALS environment variable.
func newSheetsService(ctx context.Context, opts Options) (*gsheet.Service, error) {
	credentialsFile := strings.TrimSpace(opts.CredentialsFile)
	if opts.CredentialsJSON == "" && credentialsFile == "" {
		credentialsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case strings.TrimSpace(opts.CredentialsJSON) != "":
		slog.InfoContext(ctx, "Using inline service account credentials")
		credentialsJSON = []byte(opts.CredentialsJSON)
	case credentialsFile != "":
		slog.InfoContext(ctx, "Reading service account credentials from file", "path", credentialsFile)
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) ReadRange(ctx context.Context, sheet, rangeSpec string) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rng := a1(sheet, rangeSpec)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = toStrings(row)
	}
	return rows, nil
}

func (c *Client) AppendRow(ctx context.Context, sheet, rangeSpec string, row []string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rng := a1(sheet, rangeSpec)
	vr := &gsheet.ValueRange{Values: [][]any{toAnys(row)}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", rng, err)
	}
	return nil
}

func (c *Client) WriteRange(ctx context.Context, sheet, rangeSpec string, rows [][]string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rng := a1(sheet, rangeSpec)
	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = toAnys(row)
	}
	vr := &gsheet.ValueRange{Values: values}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

func (c *Client) ClearRange(ctx context.Context, sheet, rangeSpec string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rng := a1(sheet, rangeSpec)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", rng, err)
	}
	return nil
}

func a1(sheet, rangeSpec string) string {
	return fmt.Sprintf("%s!%s", sheet, rangeSpec)
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func toAnys(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
