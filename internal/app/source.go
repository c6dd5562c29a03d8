package app

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/vk/flowbricks/internal/catalog"
	"github.com/vk/flowbricks/internal/catalogstore"
	"github.com/vk/flowbricks/internal/hcl_adapter"
)

// ErrNoCatalog is returned by operations that need a catalog when none is
// configured.
var ErrNoCatalog = errors.New("no catalog configured: set a catalog path or database")

// OpenSource returns the catalog source described by cfg. The returned
// closer releases the database when the source is a catalog store.
func OpenSource(ctx context.Context, cfg *Config) (catalog.Source, io.Closer, error) {
	if cfg.CatalogDB != "" {
		store, err := catalogstore.Open(ctx, cfg.CatalogDB)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	}
	if cfg.CatalogPath != "" {
		return fileSource(cfg.CatalogPath), nopCloser{}, nil
	}
	return nil, nopCloser{}, ErrNoCatalog
}

// fileSource picks the index-file reader for .yaml/.yml/.json paths and the
// HCL manifest loader for everything else.
func fileSource(path string) catalog.Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return catalog.FileSource{Path: path}
	default:
		return hcl_adapter.ManifestSource{Loader: hcl_adapter.NewLoader(), Paths: []string{path}}
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
