package domain

import (
	"context"
	"io"
)

// ImportService batch-creates events from tabular input.
type ImportService interface {
	// Import reads CSV from r and returns how many events were inserted.
	// Malformed rows are skipped; an unreadable input aborts with an *ImportError and nothing is written.
	Import(ctx context.Context, r io.Reader) (int, error)
}
