package output

import (
	"context"

	"msgsource/internal/domain/entities"
)

// CatalogLoader builds a CatalogSet from some backing store.
type CatalogLoader interface {
	Load(ctx context.Context) (*entities.CatalogSet, error)
}

// CatalogImporter persists a CatalogSet.
type CatalogImporter interface {
	Import(ctx context.Context, set *entities.CatalogSet) error
}
