// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the crawled graph snapshot and the regions carved out of it.
package model

import "fmt"

// NodeKind distinguishes datasets from the transforms that read and write them.
type NodeKind string

const (
	NodeData      NodeKind = "data"
	NodeTransform NodeKind = "transform"
)

// ParseNodeKind validates a raw kind string.
func ParseNodeKind(s string) (NodeKind, error) {
	switch NodeKind(s) {
	case NodeData, NodeTransform:
		return NodeKind(s), nil
	default:
		return "", fmt.Errorf("unknown node kind %q: must be %q or %q", s, NodeData, NodeTransform)
	}
}

// GraphNode is a single vertex of a graph snapshot.
type GraphNode struct {
	ID           string   `yaml:"id" json:"id"`
	Kind         NodeKind `yaml:"kind" json:"kind"`
	Predecessors []string `yaml:"predecessors,omitempty" json:"predecessors,omitempty"`
	Successors   []string `yaml:"successors,omitempty" json:"successors,omitempty"`
}

// Graph is an immutable snapshot of a pipeline platform keyed by node id.
type Graph struct {
	Nodes map[string]*GraphNode
}

// NewGraph indexes the given nodes by id. A later node with a duplicate id
// replaces the earlier one.
func NewGraph(nodes ...*GraphNode) *Graph {
	g := &Graph{Nodes: make(map[string]*GraphNode, len(nodes))}
	for _, n := range nodes {
		g.Nodes[n.ID] = n
	}
	return g
}

// Node returns the node with the given id, if present.
func (g *Graph) Node(id string) (*GraphNode, bool) {
	if g == nil {
		return nil, false
	}
	n, ok := g.Nodes[id]
	return n, ok
}

// Region is a named subset of graph node ids, candidate for becoming a unit.
// Transforms lists the transform nodes it contains; transform-kind ids found
// in Nodes are treated as members of that set too.
type Region struct {
	Name       string   `yaml:"name" json:"name"`
	Nodes      []string `yaml:"nodes" json:"nodes"`
	Transforms []string `yaml:"transforms,omitempty" json:"transforms,omitempty"`
}

// RegionBoundary is the classification of a region's data nodes. The three
// id sets are pairwise disjoint and sorted.
type RegionBoundary struct {
	Region          string   `yaml:"region" json:"region"`
	Inputs          []string `yaml:"inputs" json:"inputs"`
	Outputs         []string `yaml:"outputs" json:"outputs"`
	Internal        []string `yaml:"internal" json:"internal"`
	IsValid         bool     `yaml:"is_valid" json:"is_valid"`
	ValidationError string   `yaml:"validation_error,omitempty" json:"validation_error,omitempty"`
}
