package catalog

import (
	"context"

	"github.com/vk/flowbricks/internal/model"
)

// Source produces the flat list of unit summaries an Index is built from.
type Source interface {
	Units(ctx context.Context) ([]model.UnitSummary, error)
}

// StaticSource serves a fixed list of units.
type StaticSource []model.UnitSummary

// Units implements Source.
func (s StaticSource) Units(context.Context) ([]model.UnitSummary, error) {
	return s, nil
}
