package resolver

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/vk/flowbricks/internal/model"
)

// depGraph is an index arena over the selected units. Units are ordered by
// id and edges point from producer to consumer.
type depGraph struct {
	units []model.UnitSummary
	index map[string]int
	edges map[[2]int]struct{}
	succ  [][]int
}

func newDepGraph(units []model.UnitSummary) (*depGraph, error) {
	g := &depGraph{
		units: slices.Clone(units),
		index: make(map[string]int, len(units)),
		edges: make(map[[2]int]struct{}),
	}
	slices.SortFunc(g.units, func(a, b model.UnitSummary) int { return cmp.Compare(a.ID, b.ID) })
	for i, u := range g.units {
		if _, dup := g.index[u.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateUnit, u.ID)
		}
		g.index[u.ID] = i
	}
	return g, nil
}

// link records from -> to. It reports whether the edge is new.
func (g *depGraph) link(from, to int) bool {
	key := [2]int{from, to}
	if _, ok := g.edges[key]; ok {
		return false
	}
	g.edges[key] = struct{}{}
	return true
}

// seal builds the sorted adjacency lists once all edges are known.
func (g *depGraph) seal() {
	g.succ = make([][]int, len(g.units))
	for e := range g.edges {
		g.succ[e[0]] = append(g.succ[e[0]], e[1])
	}
	for _, s := range g.succ {
		slices.Sort(s)
	}
}

func (g *depGraph) ids(nodes []int) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = g.units[n].ID
	}
	return out
}
