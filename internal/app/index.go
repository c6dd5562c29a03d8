package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/flowbricks/internal/catalog"
	"github.com/vk/flowbricks/internal/catalogstore"
)

// IndexCatalog reads the units at CatalogPath, validates them and upserts
// them into store. It returns the number of units written.
func (a *App) IndexCatalog(ctx context.Context, store *catalogstore.Store) (int, error) {
	ctx = a.Context(ctx)
	timer := a.timer("index")
	defer timer()

	if a.config.CatalogPath == "" {
		return 0, errors.New("indexing needs a catalog path to read units from")
	}
	units, err := fileSource(a.config.CatalogPath).Units(ctx)
	if err != nil {
		return 0, err
	}
	if _, err := catalog.NewIndex(units); err != nil {
		return 0, err
	}
	if err := store.Upsert(ctx, units...); err != nil {
		return 0, fmt.Errorf("writing catalog store: %w", err)
	}
	if a.cache != nil {
		a.cache.Invalidate()
	}

	a.logger.Info("Catalog indexed.", "units", len(units), "from", a.config.CatalogPath)
	return len(units), nil
}
