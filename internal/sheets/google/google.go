// Package google backs the transaction ledger up to a Google Sheet. Rows are
// append-only: deletes flag the row instead of removing it.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"paisa/internal/core"
	ports "paisa/internal/sheets"
)

// Sheet layout: A=Date, B=Type, C=Mode, D=Category, E=Amount, F=Remarks,
// G=ID, H=Status.
const (
	statusActive  = "active"
	statusDeleted = "deleted"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var _ ports.Backup = (*Client)(nil)

// Options configure the backup client explicitly; NewFromEnv fills them from
// the environment.
type Options struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON []byte
}

// New creates a backup client from explicit options.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.SpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if opts.SheetName == "" {
		opts.SheetName = "Transactions"
	}
	if len(opts.CredentialsJSON) == 0 {
		return nil, errors.New("missing service account credentials")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(opts.CredentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets backup client created",
		"sheet", opts.SheetName)

	return &Client{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		sheetName:     opts.SheetName,
	}, nil
}

// NewFromEnv creates a backup client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus GOOGLE_CREDENTIALS_JSON or
// GOOGLE_CREDENTIALS_FILE (GOOGLE_APPLICATION_CREDENTIALS also works).
// Optional: GOOGLE_SHEET_NAME (default "Transactions").
func NewFromEnv(ctx context.Context) (*Client, error) {
	opts := Options{
		SpreadsheetID: strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID")),
		SheetName:     strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME")),
	}

	if inline := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_JSON")); inline != "" {
		opts.CredentialsJSON = []byte(inline)
	} else {
		credFile := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_FILE"))
		if credFile == "" {
			credFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
		}
		if credFile != "" {
			raw, err := os.ReadFile(credFile)
			if err != nil {
				return nil, fmt.Errorf("read credentials file: %w", err)
			}
			opts.CredentialsJSON = raw
		}
	}

	return New(ctx, opts)
}

// AppendTransaction implements ports.BackupWriter
func (c *Client) AppendTransaction(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	row := []any{
		tx.DateKey(),
		string(tx.Type),
		string(tx.Mode),
		tx.Category,
		tx.Amount.Rupees(),
		tx.Remarks,
		tx.ID,
		statusActive,
	}

	rng := fmt.Sprintf("%s!A:H", c.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{row}}

	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to sheet %s: %w", c.sheetName, err)
	}

	ref := rng
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		ref = resp.Updates.UpdatedRange
	}

	slog.InfoContext(ctx, "Transaction backed up to sheet",
		"id", tx.ID,
		"sheet_ref", ref)

	return ref, nil
}

// FlagDeleted implements ports.BackupFlagger. It finds the row carrying the
// id in column G and writes the deleted status into column H.
func (c *Client) FlagDeleted(ctx context.Context, id string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rowNum, err := c.findRowByID(ctx, id)
	if err != nil {
		return err
	}
	if rowNum == 0 {
		// Never backed up; nothing to flag.
		slog.WarnContext(ctx, "Transaction not found in backup sheet", "id", id)
		return nil
	}

	rng := fmt.Sprintf("%s!H%d", c.sheetName, rowNum)
	vr := &gsheet.ValueRange{Values: [][]any{{statusDeleted}}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("flag row %d deleted: %w", rowNum, err)
	}

	slog.InfoContext(ctx, "Transaction flagged deleted in backup sheet",
		"id", id, "row", rowNum)
	return nil
}

// findRowByID returns the 1-based row number whose column G equals id, or 0.
func (c *Client) findRowByID(ctx context.Context, id string) (int, error) {
	rng := fmt.Sprintf("%s!G:G", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read id column: %w", err)
	}

	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) == id {
			return i + 1, nil
		}
	}
	return 0, nil
}
