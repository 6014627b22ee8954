package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"aidat/internal/core"

	ports "aidat/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	summarySheet  string
}

// Ensure interface conformance
var _ ports.SummaryExporter = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID
// Optional: GOOGLE_SUMMARY_SHEET (default "Ozet")
// Auth: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheet := strings.TrimSpace(os.Getenv("GOOGLE_SUMMARY_SHEET"))
	if sheet == "" {
		sheet = "Ozet"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		summarySheet:  sheet,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
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

// ExportAnnualSummary replaces the summary sheet with the given year's
// figures: a header, one row per month, and a totals row.
func (c *Client) ExportAnnualSummary(ctx context.Context, s core.AnnualSummary) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rows, err := summaryRows(s)
	if err != nil {
		return err
	}

	clearRange := fmt.Sprintf("%s!A:D", c.summarySheet)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet %s: %w", c.summarySheet, err)
	}

	writeRange := fmt.Sprintf("%s!A1:D%d", c.summarySheet, len(rows))
	vr := &gsheet.ValueRange{Values: rows}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return fmt.Errorf("update sheet %s: %w", c.summarySheet, err)
	}

	return nil
}

func summaryRows(s core.AnnualSummary) ([][]any, error) {
	rows := make([][]any, 0, len(s.Rows)+2)
	rows = append(rows, []any{fmt.Sprintf("%d", s.Year), "Gelir", "Gider", "Net"})
	for _, r := range s.Rows {
		label, err := r.Month.Label()
		if err != nil {
			return nil, fmt.Errorf("month label for %s: %w", r.Month, err)
		}
		rows = append(rows, []any{label, r.Income.Float(), r.Expense.Float(), r.Net.Float()})
	}
	rows = append(rows, []any{"Toplam", s.TotalIncome.Float(), s.TotalExpense.Float(), s.TotalNet.Float()})
	return rows, nil
}
