package matcher

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/vk/flowbricks/internal/catalog"
	"github.com/vk/flowbricks/internal/ctxlog"
	"github.com/vk/flowbricks/internal/model"
)

// DefaultMinScore drops weak matches when no other minimum is configured.
const DefaultMinScore = 0.3

// Sub-score names reported in MatchResult.Breakdown.
const (
	ScoreTags         = "tags"
	ScoreCapabilities = "capabilities"
	ScoreInputs       = "inputs"
	ScoreOutputs      = "outputs"
)

// Options tunes a Matcher.
type Options struct {
	// MinScore drops units scoring strictly below it. Values outside [0,1]
	// are clamped.
	MinScore float64
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{MinScore: DefaultMinScore}
}

// Matcher ranks the units of one catalog snapshot. It is stateless beyond
// its snapshot and safe for concurrent use.
type Matcher struct {
	index *catalog.Index
	opts  Options
}

// New creates a matcher over index.
func New(index *catalog.Index, opts Options) *Matcher {
	opts.MinScore = min(max(opts.MinScore, 0), 1)
	return &Matcher{index: index, opts: opts}
}

// Match returns the units matching q, highest score first, ties broken by
// unit id, capped at q's effective limit. An empty result is not an error.
func (m *Matcher) Match(ctx context.Context, q model.Query) []model.MatchResult {
	logger := ctxlog.FromContext(ctx)
	q = normalizeQuery(q)
	logger.Debug("Matching catalog.", "units", m.index.Len(), "has_filters", q.HasFilters(), "limit", q.EffectiveLimit())

	var results []model.MatchResult
	filtered := 0
	m.eachCandidate(q, func(u *model.UnitSummary) {
		if !passesFilters(u, q) {
			filtered++
			return
		}
		score, breakdown := scoreUnit(u, q)
		if score < m.opts.MinScore {
			return
		}
		results = append(results, model.MatchResult{
			UnitID:    u.ID,
			Version:   u.Version,
			Score:     score,
			Breakdown: breakdown,
		})
	})

	slices.SortFunc(results, func(a, b model.MatchResult) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return strings.Compare(a.UnitID, b.UnitID)
	})
	if limit := q.EffectiveLimit(); len(results) > limit {
		results = results[:limit]
	}

	logger.Debug("Catalog matched.", "filtered_out", filtered, "results", len(results))
	return results
}

// eachCandidate narrows the scan with the category index when the query
// filters on category.
func (m *Matcher) eachCandidate(q model.Query, fn func(u *model.UnitSummary)) {
	if q.Category == "" {
		m.index.Each(fn)
		return
	}
	for _, u := range m.index.ByCategory(q.Category) {
		fn(&u)
	}
}

// normalizeQuery trims and lower-cases the soft criteria and drops empty
// entries so they do not count as specified.
func normalizeQuery(q model.Query) model.Query {
	q.Tags = normalizeTerms(q.Tags)
	q.Capabilities = normalizeTerms(q.Capabilities)
	q.Inputs = normalizeRequirements(q.Inputs)
	q.Outputs = normalizeRequirements(q.Outputs)
	return q
}

func normalizeTerms(terms []string) []string {
	var out []string
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func normalizeRequirements(reqs []model.PortRequirement) []model.PortRequirement {
	var out []model.PortRequirement
	for _, r := range reqs {
		r.Name = strings.ToLower(strings.TrimSpace(r.Name))
		r.Kind = strings.ToLower(strings.TrimSpace(r.Kind))
		if r.Name == "" && r.Kind == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
