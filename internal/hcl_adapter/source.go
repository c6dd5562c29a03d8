package hcl_adapter

import (
	"context"

	"github.com/vk/flowbricks/internal/model"
)

// ManifestSource serves the units declared in HCL manifests as a catalog
// source. Wire hints in the same files are ignored here.
type ManifestSource struct {
	Loader *Loader
	Paths  []string
}

// Units implements catalog.Source.
func (s ManifestSource) Units(ctx context.Context) ([]model.UnitSummary, error) {
	loader := s.Loader
	if loader == nil {
		loader = NewLoader()
	}
	m, err := loader.Load(ctx, s.Paths...)
	if err != nil {
		return nil, err
	}
	return m.Units, nil
}
