package resolver

import (
	"context"
	"fmt"

	"github.com/vk/flowbricks/internal/ctxlog"
	"github.com/vk/flowbricks/internal/model"
)

// linkExplicitDeps validates hints against the selected units and overlays
// each as a forced edge. The returned map is keyed by target port.
func linkExplicitDeps(ctx context.Context, g *depGraph, hints []model.WireHint) (map[model.PortRef]model.WireHint, error) {
	logger := ctxlog.FromContext(ctx)
	byTarget := make(map[model.PortRef]model.WireHint, len(hints))

	for _, h := range hints {
		from, ok := g.index[h.Source.Unit]
		if !ok {
			return nil, fmt.Errorf("%w: %s -> %s: source unit %q is not selected", ErrInvalidHint, h.Source, h.Target, h.Source.Unit)
		}
		to, ok := g.index[h.Target.Unit]
		if !ok {
			return nil, fmt.Errorf("%w: %s -> %s: target unit %q is not selected", ErrInvalidHint, h.Source, h.Target, h.Target.Unit)
		}
		if _, ok := g.units[from].Output(h.Source.Port); !ok {
			return nil, fmt.Errorf("%w: unit %q has no output %q", ErrInvalidHint, h.Source.Unit, h.Source.Port)
		}
		if _, ok := g.units[to].Input(h.Target.Port); !ok {
			return nil, fmt.Errorf("%w: unit %q has no input %q", ErrInvalidHint, h.Target.Unit, h.Target.Port)
		}
		if prev, dup := byTarget[h.Target]; dup {
			return nil, fmt.Errorf("%w: input %s is wired from both %s and %s", ErrInvalidHint, h.Target, prev.Source, h.Source)
		}
		byTarget[h.Target] = h

		if g.link(from, to) {
			logger.Debug("Linking explicit dependency.", "from", h.Source.String(), "to", h.Target.String())
		}
	}
	return byTarget, nil
}
