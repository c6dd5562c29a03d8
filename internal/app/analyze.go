package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vk/flowbricks/internal/ctxlog"
	"github.com/vk/flowbricks/internal/model"
	"github.com/vk/flowbricks/internal/snapshot"
	"golang.org/x/sync/errgroup"
)

// AnalyzeRegions analyzes the named regions of snap, or all of them when no
// names are given, using up to WorkerCount goroutines. Results keep the
// order of the requested regions.
func (a *App) AnalyzeRegions(ctx context.Context, snap *snapshot.Snapshot, names ...string) ([]model.RegionBoundary, error) {
	ctx = a.Context(ctx)
	timer := a.timer("analyze")
	defer timer()

	regions := snap.Regions
	if len(names) > 0 {
		regions = make([]model.Region, 0, len(names))
		for _, name := range names {
			r, ok := snap.Region(name)
			if !ok {
				return nil, fmt.Errorf("region %q not found in snapshot", name)
			}
			regions = append(regions, r)
		}
	}
	a.logger.Debug("Analyzing regions.", "count", len(regions), "workers", a.config.WorkerCount)

	results := make([]model.RegionBoundary, len(regions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.config.WorkerCount, 1))
	for i, r := range regions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.analyzer.Analyze(ctxlog.With(gctx, "region", r.Name), r, snap.Graph)
			a.metrics.RegionsAnalyzed.WithLabelValues(strconv.FormatBool(results[i].IsValid)).Inc()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyzing regions: %w", err)
	}

	a.logger.Info("Regions analyzed.", "count", len(results))
	return results, nil
}
