package memory

import (
	"context"
	"sync"

	"aidat/internal/core"
)

// Exporter records exported summaries in memory. Used by tests and runs
// without Google credentials.
type Exporter struct {
	mu       sync.Mutex
	exported []core.AnnualSummary

	// Err, when set, is returned from every export.
	Err error
}

func New() *Exporter {
	return &Exporter{}
}

func (e *Exporter) ExportAnnualSummary(_ context.Context, s core.AnnualSummary) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return e.Err
	}
	e.exported = append(e.exported, s)
	return nil
}

// Exported returns every summary received so far, oldest first.
func (e *Exporter) Exported() []core.AnnualSummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]core.AnnualSummary(nil), e.exported...)
}
