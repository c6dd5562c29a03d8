// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the wiring between units and the resolved execution plan.
package model

import (
	"fmt"
	"strings"
)

// PortRef addresses a single port of a unit.
type PortRef struct {
	Unit string `yaml:"unit" json:"unit"`
	Port string `yaml:"port" json:"port"`
}

// String renders the reference as "unit.port".
func (r PortRef) String() string { return r.Unit + "." + r.Port }

// ParsePortRef splits "unit.port" on its last dot, so unit ids may contain dots.
func ParsePortRef(s string) (PortRef, error) {
	i := strings.LastIndexByte(s, '.')
	if i <= 0 || i == len(s)-1 {
		return PortRef{}, fmt.Errorf("invalid port reference %q: expected unit.port", s)
	}
	return PortRef{Unit: s[:i], Port: s[i+1:]}, nil
}

// Wire connects an output port of one unit to an input port of another.
type Wire struct {
	SourceUnit string `yaml:"source_unit" json:"source_unit"`
	SourcePort string `yaml:"source_port" json:"source_port"`
	TargetUnit string `yaml:"target_unit" json:"target_unit"`
	TargetPort string `yaml:"target_port" json:"target_port"`
	Channel    string `yaml:"channel_name" json:"channel_name"`
}

// ChannelName is the deterministic channel synthesized for an output port.
func ChannelName(unit, port string) string {
	return unit + "_" + port
}

// WireHint is a user-supplied wiring that forces a dependency and overrides
// inference for its target port.
type WireHint struct {
	Source PortRef `yaml:"from" json:"from"`
	Target PortRef `yaml:"to" json:"to"`
}

// ParseWireHint builds a hint from two "unit.port" references.
func ParseWireHint(from, to string) (WireHint, error) {
	src, err := ParsePortRef(from)
	if err != nil {
		return WireHint{}, fmt.Errorf("hint source: %w", err)
	}
	dst, err := ParsePortRef(to)
	if err != nil {
		return WireHint{}, fmt.Errorf("hint target: %w", err)
	}
	return WireHint{Source: src, Target: dst}, nil
}

// ResolvedPlan is the deterministic recomposition of a set of units.
// ExecutionOrder is the concatenation of Stages.
type ResolvedPlan struct {
	ExecutionOrder []string   `yaml:"execution_order" json:"execution_order"`
	Stages         [][]string `yaml:"stages" json:"stages"`
	Wiring         []Wire     `yaml:"wiring" json:"wiring"`
}

// WireFor returns the wire feeding the given input port, if any.
func (p *ResolvedPlan) WireFor(unit, port string) (Wire, bool) {
	for _, w := range p.Wiring {
		if w.TargetUnit == unit && w.TargetPort == port {
			return w, true
		}
	}
	return Wire{}, false
}
