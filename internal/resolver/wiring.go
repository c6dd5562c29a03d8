package resolver

import (
	"context"
	"slices"

	"github.com/vk/flowbricks/internal/ctxlog"
	"github.com/vk/flowbricks/internal/model"
)

// generateWiring binds the inputs of every unit past the first stage. A hint
// for the exact target port wins. Otherwise units from earlier stages are
// scanned nearest first and the first schema-compatible output is taken,
// falling back to the first output whose kind matches. Inputs with no
// candidate stay unwired.
func (g *depGraph) generateWiring(ctx context.Context, stages [][]int, hints map[model.PortRef]model.WireHint) []model.Wire {
	logger := ctxlog.FromContext(ctx)
	wiring := []model.Wire{}

	var placed []int
	for s, stage := range stages {
		if s > 0 {
			for _, n := range stage {
				wiring = append(wiring, g.wireUnit(ctx, n, placed, hints)...)
			}
		}
		placed = append(placed, stage...)
	}

	logger.Debug("Wiring generated.", "wires", len(wiring))
	return wiring
}

func (g *depGraph) wireUnit(ctx context.Context, n int, placed []int, hints map[model.PortRef]model.WireHint) []model.Wire {
	logger := ctxlog.FromContext(ctx)
	target := &g.units[n]

	var wires []model.Wire
	for _, in := range target.Inputs {
		ref := model.PortRef{Unit: target.ID, Port: in.Name}
		if h, ok := hints[ref]; ok {
			wires = append(wires, newWire(h.Source, ref))
			continue
		}
		src, ok := g.findSource(in, placed)
		if !ok {
			logger.Debug("Input left unwired.", "unit", target.ID, "input", in.Name, "kind", in.Kind)
			continue
		}
		wires = append(wires, newWire(src, ref))
	}
	return wires
}

func (g *depGraph) findSource(in model.Port, placed []int) (model.PortRef, bool) {
	var fallback *model.PortRef
	for _, c := range slices.Backward(placed) {
		producer := &g.units[c]
		for _, out := range producer.Outputs {
			if !kindMatches(out, in) {
				continue
			}
			ref := model.PortRef{Unit: producer.ID, Port: out.Name}
			if schemaCompatible(out, in) {
				return ref, true
			}
			if fallback == nil {
				fallback = &ref
			}
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return model.PortRef{}, false
}

func newWire(src, dst model.PortRef) model.Wire {
	return model.Wire{
		SourceUnit: src.Unit,
		SourcePort: src.Port,
		TargetUnit: dst.Unit,
		TargetPort: dst.Port,
		Channel:    model.ChannelName(src.Unit, src.Port),
	}
}
