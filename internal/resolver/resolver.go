package resolver

import (
	"context"
	"fmt"

	"github.com/vk/flowbricks/internal/ctxlog"
	"github.com/vk/flowbricks/internal/model"
)

// Resolver builds execution plans from unit port metadata.
type Resolver struct{}

// New returns a Resolver.
func New() *Resolver {
	return &Resolver{}
}

// Resolve infers dependencies between units, overlays hints, rejects cycles
// with a *CircularDependencyError and returns stages, execution order and
// wiring. Hints naming unknown units or ports, or wiring the same input
// twice, are rejected with ErrInvalidHint.
func (r *Resolver) Resolve(ctx context.Context, units []model.UnitSummary, hints []model.WireHint) (*model.ResolvedPlan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolve: Starting.", "units", len(units), "hints", len(hints))

	g, err := newDepGraph(units)
	if err != nil {
		return nil, err
	}

	implicit := linkImplicitDeps(ctx, g)
	byTarget, err := linkExplicitDeps(ctx, g, hints)
	if err != nil {
		return nil, err
	}
	g.seal()
	logger.Debug("Resolve: Linking complete.", "implicit_edges", implicit, "edges", len(g.edges))

	if err := g.detectCycles(); err != nil {
		logger.Debug("Resolve: Cycle detected.", "error", err)
		return nil, err
	}

	stages := g.computeStages()
	plan := &model.ResolvedPlan{
		ExecutionOrder: []string{},
		Stages:         make([][]string, 0, len(stages)),
	}
	for _, stage := range stages {
		ids := g.ids(stage)
		plan.Stages = append(plan.Stages, ids)
		plan.ExecutionOrder = append(plan.ExecutionOrder, ids...)
	}
	if len(plan.ExecutionOrder) != len(g.units) {
		return nil, fmt.Errorf("internal error: staged %d of %d units", len(plan.ExecutionOrder), len(g.units))
	}
	plan.Wiring = g.generateWiring(ctx, stages, byTarget)

	logger.Debug("Resolve: Plan ready.", "stages", len(plan.Stages), "wires", len(plan.Wiring))
	return plan, nil
}
