// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines cataloged units and their typed ports.
package model

import "slices"

// Column is one entry of a port schema.
type Column struct {
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type,omitempty" json:"type,omitempty"`
	Nullable bool   `yaml:"nullable,omitempty" json:"nullable,omitempty"`
}

// Port is a named, typed connection point on a unit. Required is only
// meaningful for inputs. An empty Schema means the port is untyped.
type Port struct {
	Name     string   `yaml:"name" json:"name"`
	Kind     string   `yaml:"kind" json:"kind"`
	Required bool     `yaml:"required,omitempty" json:"required,omitempty"`
	Schema   []Column `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// HasSchema reports whether the port declares any columns.
func (p Port) HasSchema() bool { return len(p.Schema) > 0 }

// UnitSummary is the read-only catalog description of a reusable unit.
type UnitSummary struct {
	ID          string   `yaml:"unit_id" json:"unit_id"`
	Name        string   `yaml:"name,omitempty" json:"name,omitempty"`
	Version     string   `yaml:"version" json:"version"`
	Category    string   `yaml:"category,omitempty" json:"category,omitempty"`
	Domain      string   `yaml:"domain,omitempty" json:"domain,omitempty"`
	Protected   bool     `yaml:"protected,omitempty" json:"protected,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Inputs      []Port   `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	Outputs     []Port   `yaml:"outputs,omitempty" json:"outputs,omitempty"`
}

// DisplayName returns Name, or the unit id when no name was cataloged.
func (u UnitSummary) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}

// Input returns the input port with the given name.
func (u UnitSummary) Input(name string) (Port, bool) {
	return findPort(u.Inputs, name)
}

// Output returns the output port with the given name.
func (u UnitSummary) Output(name string) (Port, bool) {
	return findPort(u.Outputs, name)
}

// Clone returns a deep copy so callers can hand out summaries without
// exposing the catalog's backing slices.
func (u UnitSummary) Clone() UnitSummary {
	c := u
	c.Tags = slices.Clone(u.Tags)
	c.Inputs = clonePorts(u.Inputs)
	c.Outputs = clonePorts(u.Outputs)
	return c
}

func findPort(ports []Port, name string) (Port, bool) {
	for _, p := range ports {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

func clonePorts(ports []Port) []Port {
	if ports == nil {
		return nil
	}
	out := make([]Port, len(ports))
	for i, p := range ports {
		out[i] = p
		out[i].Schema = slices.Clone(p.Schema)
	}
	return out
}
