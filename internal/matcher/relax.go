package matcher

import (
	"context"

	"github.com/vk/flowbricks/internal/ctxlog"
	"github.com/vk/flowbricks/internal/model"
)

// Relaxation reports which hard filters were dropped to obtain results.
type Relaxation struct {
	Dropped []string
}

// MatchRelaxed behaves like Match, but when q yields nothing it retries
// with its hard filters removed one by one, in the order min_version,
// protected, domain, category, stopping at the first non-empty answer.
func (m *Matcher) MatchRelaxed(ctx context.Context, q model.Query) ([]model.MatchResult, Relaxation) {
	logger := ctxlog.FromContext(ctx)

	results := m.Match(ctx, q)
	var relax Relaxation
	if len(results) > 0 || !q.HasFilters() {
		return results, relax
	}

	steps := []struct {
		name  string
		apply func(*model.Query) bool
	}{
		{"min_version", func(q *model.Query) bool { ok := q.MinVersion != ""; q.MinVersion = ""; return ok }},
		{"protected", func(q *model.Query) bool { ok := q.Protected != nil; q.Protected = nil; return ok }},
		{"domain", func(q *model.Query) bool { ok := q.Domain != ""; q.Domain = ""; return ok }},
		{"category", func(q *model.Query) bool { ok := q.Category != ""; q.Category = ""; return ok }},
	}
	for _, step := range steps {
		if !step.apply(&q) {
			continue
		}
		relax.Dropped = append(relax.Dropped, step.name)
		logger.Debug("Relaxing query filter.", "filter", step.name)
		if results = m.Match(ctx, q); len(results) > 0 {
			break
		}
	}
	return results, relax
}
