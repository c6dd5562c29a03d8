package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vk/flowbricks/internal/catalog"
	"github.com/vk/flowbricks/internal/emitter"
	"github.com/vk/flowbricks/internal/model"
	"github.com/vk/flowbricks/internal/resolver"
)

// Plan resolves the given catalog units, plus hints, into a plan. It also
// returns the summaries it resolved, in the order requested.
func (a *App) Plan(ctx context.Context, unitIDs []string, hints []model.WireHint) (*model.ResolvedPlan, []model.UnitSummary, error) {
	ctx = a.Context(ctx)
	timer := a.timer("plan")
	defer timer()

	idx, err := a.Catalog(ctx)
	if err != nil {
		return nil, nil, err
	}
	units := make([]model.UnitSummary, 0, len(unitIDs))
	for _, id := range unitIDs {
		u, ok := idx.Get(id)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", catalog.ErrNotFound, id)
		}
		units = append(units, u)
	}

	plan, err := a.resolver.Resolve(ctx, units, hints)
	if err != nil {
		var cycle *resolver.CircularDependencyError
		if errors.As(err, &cycle) {
			a.metrics.PlansResolved.WithLabelValues("cycle").Inc()
		} else {
			a.metrics.PlansResolved.WithLabelValues("error").Inc()
		}
		return nil, nil, err
	}

	a.metrics.PlansResolved.WithLabelValues("ok").Inc()
	a.metrics.PlanStages.Observe(float64(len(plan.Stages)))
	a.logger.Info("Plan resolved.", "units", len(units), "stages", len(plan.Stages), "wires", len(plan.Wiring))
	return plan, units, nil
}

// Emit writes plan to w and logs every input left unwired.
func (a *App) Emit(w io.Writer, format emitter.Format, plan *model.ResolvedPlan, units []model.UnitSummary) (emitter.Report, error) {
	report, err := emitter.Emit(w, format, plan, units)
	if err != nil {
		return report, err
	}
	for _, u := range report.Unwired {
		a.logger.Warn("Input left unwired.", "unit", u.Unit, "port", u.Port, "required", u.Required)
	}
	a.metrics.UnwiredInputs.Add(float64(len(report.Unwired)))
	return report, nil
}
