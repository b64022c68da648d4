package ports

import (
	"context"

	"github.com/bft-labs/speciesdiff/internal/domain"
)

// Reporter renders a comparison result into one output artifact.
type Reporter interface {
	// Name identifies the report kind (e.g. "summary", "workbook").
	Name() string

	// Render builds the complete artifact in memory and then writes it.
	// It returns the path written. On failure no partial file is left behind
	// and the error is tagged domain.KindIOWrite.
	Render(ctx context.Context, result domain.ComparisonResult) (string, error)
}
