package resolver

import (
	"context"
	"strings"

	"github.com/vk/flowbricks/internal/ctxlog"
	"github.com/vk/flowbricks/internal/model"
)

// linkImplicitDeps adds producer -> consumer whenever some output of the
// producer is wireable to some input of the consumer. Self-edges are never
// inferred.
func linkImplicitDeps(ctx context.Context, g *depGraph) int {
	logger := ctxlog.FromContext(ctx)
	added := 0
	for from := range g.units {
		for to := range g.units {
			if from == to {
				continue
			}
			out, in, ok := firstWireablePair(&g.units[from], &g.units[to])
			if !ok {
				continue
			}
			if g.link(from, to) {
				added++
				logger.Debug("Linking implicit dependency.",
					"from", g.units[from].ID, "to", g.units[to].ID, "output", out, "input", in)
			}
		}
	}
	return added
}

func firstWireablePair(producer, consumer *model.UnitSummary) (string, string, bool) {
	for _, in := range consumer.Inputs {
		for _, out := range producer.Outputs {
			if wireable(out, in) {
				return out.Name, in.Name, true
			}
		}
	}
	return "", "", false
}

// wireable reports whether out can feed in: kinds match, and when both ports
// declare a schema the non-nullable columns of in all exist in out.
func wireable(out, in model.Port) bool {
	return kindMatches(out, in) && schemaCompatible(out, in)
}

func kindMatches(out, in model.Port) bool {
	return strings.EqualFold(out.Kind, in.Kind)
}

func schemaCompatible(out, in model.Port) bool {
	if !out.HasSchema() || !in.HasSchema() {
		return true
	}
	have := make(map[string]struct{}, len(out.Schema))
	for _, c := range out.Schema {
		have[c.Name] = struct{}{}
	}
	for _, c := range in.Schema {
		if c.Nullable {
			continue
		}
		if _, ok := have[c.Name]; !ok {
			return false
		}
	}
	return true
}
