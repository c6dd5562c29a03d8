package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/flowbricks/internal/model"
)

type matchOutput struct {
	Query   *model.Query        `yaml:"query,omitempty"`
	Relaxed []string            `yaml:"relaxed,omitempty"`
	Results []model.MatchResult `yaml:"results"`
}

func newMatchCmd(s *session) *cobra.Command {
	var (
		q           model.Query
		protected   bool
		unprotected bool
		inputs      []string
		outputs     []string
		relaxed     bool
	)
	cmd := &cobra.Command{
		Use:   "match [free text...]",
		Short: "Rank cataloged units against a query or a free-text intent",
		Long: `Rank cataloged units. With positional text the query is derived from the
words; otherwise it is built from the flags. Port requirements take the
form kind, name:kind or name: (any kind).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) > 0 {
				parsed, results, relax, err := s.app.MatchText(ctx, strings.Join(args, " "), relaxed)
				if err != nil {
					return err
				}
				return writeYAML(s.outW, matchOutput{Query: &parsed, Relaxed: relax.Dropped, Results: nonNil(results)})
			}

			if protected && unprotected {
				return usageError(errors.New("--protected and --unprotected are mutually exclusive"))
			}
			if protected || unprotected {
				q.Protected = &protected
			}
			q.Inputs = parseRequirements(inputs)
			q.Outputs = parseRequirements(outputs)

			results, relax, err := s.app.Match(ctx, q, relaxed)
			if err != nil {
				return err
			}
			return writeYAML(s.outW, matchOutput{Relaxed: relax.Dropped, Results: nonNil(results)})
		},
	}
	f := cmd.Flags()
	f.StringVar(&q.Category, "category", "", "Only units in this category.")
	f.StringVar(&q.Domain, "domain", "", "Only units in this domain.")
	f.StringVar(&q.MinVersion, "min-version", "", "Only units at or above this version.")
	f.BoolVar(&protected, "protected", false, "Only protected units.")
	f.BoolVar(&unprotected, "unprotected", false, "Only unprotected units.")
	f.StringSliceVar(&q.Tags, "tag", nil, "Tags to score against (repeatable).")
	f.StringSliceVar(&q.Capabilities, "capability", nil, "Capability keywords to score against (repeatable).")
	f.StringSliceVar(&inputs, "input", nil, "Input port requirement (repeatable).")
	f.StringSliceVar(&outputs, "output", nil, "Output port requirement (repeatable).")
	f.IntVar(&q.Limit, "top", 0, "Result limit for this query; overrides --limit.")
	f.BoolVar(&relaxed, "relaxed", false, "Drop hard filters one by one when nothing matches.")
	return cmd
}

// parseRequirements reads "kind", "name:kind" and "name:" forms.
func parseRequirements(args []string) []model.PortRequirement {
	var reqs []model.PortRequirement
	for _, arg := range args {
		name, kind, found := strings.Cut(arg, ":")
		if !found {
			name, kind = "", arg
		}
		reqs = append(reqs, model.PortRequirement{Name: name, Kind: kind})
	}
	return reqs
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
