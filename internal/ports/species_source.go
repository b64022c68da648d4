package ports

import (
	"context"

	"github.com/bft-labs/speciesdiff/internal/domain"
)

// SpeciesSource reads species names from a key->name mapping file.
type SpeciesSource interface {
	// Load returns the mapping values in file order, duplicates included.
	// Keys are discarded.
	// A missing file yields a domain.KindNotFound error; content that is not
	// a flat key->string mapping yields domain.KindDataFormat.
	Load(ctx context.Context, path string) ([]domain.SpeciesName, error)
}
