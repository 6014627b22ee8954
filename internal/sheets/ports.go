package sheets

import (
	"context"

	"aidat/internal/core"
)

// Ports for outbound adapters.
type (
	// SummaryExporter writes an annual summary to an external sheet,
	// replacing whatever the sheet held for that year.
	SummaryExporter interface {
		ExportAnnualSummary(ctx context.Context, s core.AnnualSummary) error
	}
)
