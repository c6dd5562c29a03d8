package app

import (
	"context"

	"github.com/vk/flowbricks/internal/matcher"
	"github.com/vk/flowbricks/internal/model"
)

// Match ranks catalog units against q. A zero q.Limit takes the configured
// limit. With relaxed set, hard filters are dropped until something matches.
func (a *App) Match(ctx context.Context, q model.Query, relaxed bool) ([]model.MatchResult, matcher.Relaxation, error) {
	ctx = a.Context(ctx)
	timer := a.timer("match")
	defer timer()

	if err := matcher.ValidateQuery(q); err != nil {
		return nil, matcher.Relaxation{}, err
	}
	idx, err := a.Catalog(ctx)
	if err != nil {
		return nil, matcher.Relaxation{}, err
	}
	if q.Limit == 0 {
		q.Limit = a.config.Limit
	}
	m := matcher.New(idx, a.matcherOptions())

	var (
		results []model.MatchResult
		relax   matcher.Relaxation
	)
	if relaxed {
		results, relax = m.MatchRelaxed(ctx, q)
	} else {
		results = m.Match(ctx, q)
	}

	a.metrics.MatchQueries.Inc()
	a.metrics.MatchResults.Observe(float64(len(results)))
	a.logger.Info("Catalog matched.", "results", len(results), "relaxed", relax.Dropped)
	return results, relax, nil
}

// MatchText parses free text with the catalog's vocabulary and matches the
// resulting query. The parsed query is returned alongside the results.
func (a *App) MatchText(ctx context.Context, text string, relaxed bool) (model.Query, []model.MatchResult, matcher.Relaxation, error) {
	idx, err := a.Catalog(ctx)
	if err != nil {
		return model.Query{}, nil, matcher.Relaxation{}, err
	}
	var parser matcher.IntentParser = matcher.NewKeywordParserFromIndex(idx)
	q := parser.Parse(text)
	a.logger.Debug("Intent parsed.", "text", text, "category", q.Category, "domain", q.Domain, "tags", q.Tags, "capabilities", q.Capabilities)

	results, relax, err := a.Match(ctx, q, relaxed)
	return q, results, relax, err
}

func (a *App) matcherOptions() matcher.Options {
	opts := matcher.DefaultOptions()
	if a.config.MinScore != nil {
		opts.MinScore = *a.config.MinScore
	}
	return opts
}
