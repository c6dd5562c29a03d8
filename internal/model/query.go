// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines catalog queries and the scored results they produce.
package model

// DefaultLimit caps match results when a query does not set its own limit.
const DefaultLimit = 10

// PortRequirement asks for a port whose name contains Name and whose kind is
// Kind. Empty fields are not checked.
type PortRequirement struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	Kind string `yaml:"kind,omitempty" json:"kind,omitempty"`
}

// Query describes what a caller is looking for in the catalog. Every field
// is optional; an empty Query matches every unit with the maximal score.
type Query struct {
	// Hard filters.
	Category   string `yaml:"category,omitempty" json:"category,omitempty"`
	Domain     string `yaml:"domain,omitempty" json:"domain,omitempty"`
	Protected  *bool  `yaml:"protected,omitempty" json:"protected,omitempty"`
	MinVersion string `yaml:"min_version,omitempty" json:"min_version,omitempty"`

	// Soft criteria.
	Tags         []string          `yaml:"tags,omitempty" json:"tags,omitempty"`
	Capabilities []string          `yaml:"capabilities,omitempty" json:"capabilities,omitempty"`
	Inputs       []PortRequirement `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	Outputs      []PortRequirement `yaml:"outputs,omitempty" json:"outputs,omitempty"`

	Limit int `yaml:"limit,omitempty" json:"limit,omitempty"`
}

// HasFilters reports whether any hard filter is set.
func (q Query) HasFilters() bool {
	return q.Category != "" || q.Domain != "" || q.Protected != nil || q.MinVersion != ""
}

// EffectiveLimit returns Limit, or DefaultLimit when Limit is not positive.
func (q Query) EffectiveLimit() int {
	if q.Limit <= 0 {
		return DefaultLimit
	}
	return q.Limit
}

// MatchResult is one ranked answer to a Query.
type MatchResult struct {
	UnitID    string             `yaml:"unit_id" json:"unit_id"`
	Version   string             `yaml:"version" json:"version"`
	Score     float64            `yaml:"score" json:"score"`
	Breakdown map[string]float64 `yaml:"score_breakdown,omitempty" json:"score_breakdown,omitempty"`
}
