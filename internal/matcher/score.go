package matcher

import (
	"strings"

	"github.com/vk/flowbricks/internal/model"
)

// scoreUnit computes the ratio of accumulated sub-scores to the number of
// criteria the query specified. q must already be normalized.
func scoreUnit(u *model.UnitSummary, q model.Query) (float64, map[string]float64) {
	breakdown := make(map[string]float64, 4)
	var numerator, denominator float64

	add := func(name string, v float64) {
		breakdown[name] = v
		numerator += v
		denominator++
	}

	if len(q.Tags) > 0 {
		add(ScoreTags, tagScore(u, q.Tags))
	}
	if len(q.Capabilities) > 0 {
		add(ScoreCapabilities, capabilityScore(u, q.Capabilities))
	}
	if len(q.Inputs) > 0 {
		add(ScoreInputs, portScore(u.Inputs, q.Inputs))
	}
	if len(q.Outputs) > 0 {
		add(ScoreOutputs, portScore(u.Outputs, q.Outputs))
	}

	if denominator == 0 {
		return 1.0, breakdown
	}
	return numerator / denominator, breakdown
}

// tagScore is |matching tags| / |query tags|, case-insensitive.
func tagScore(u *model.UnitSummary, tags []string) float64 {
	have := make(map[string]struct{}, len(u.Tags))
	for _, t := range u.Tags {
		have[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	matched := 0
	for _, t := range tags {
		if _, ok := have[t]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(tags))
}

// capabilityScore is the fraction of keywords found as substrings of the
// unit's name, description and tags.
func capabilityScore(u *model.UnitSummary, keywords []string) float64 {
	haystack := strings.ToLower(u.DisplayName() + " " + u.Description + " " + strings.Join(u.Tags, " "))
	found := 0
	for _, k := range keywords {
		if strings.Contains(haystack, k) {
			found++
		}
	}
	return float64(found) / float64(len(keywords))
}

// portScore is the fraction of requirements satisfied by at least one port.
func portScore(ports []model.Port, reqs []model.PortRequirement) float64 {
	satisfied := 0
	for _, r := range reqs {
		for _, p := range ports {
			if portSatisfies(p, r) {
				satisfied++
				break
			}
		}
	}
	return float64(satisfied) / float64(len(reqs))
}

func portSatisfies(p model.Port, r model.PortRequirement) bool {
	if r.Name != "" && !strings.Contains(strings.ToLower(p.Name), r.Name) {
		return false
	}
	if r.Kind != "" && !strings.EqualFold(p.Kind, r.Kind) {
		return false
	}
	return true
}
