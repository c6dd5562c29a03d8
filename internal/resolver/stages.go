package resolver

import "slices"

// computeStages peels off every unit with no remaining producers, stage by
// stage. Each stage is sorted by id. The graph must be acyclic.
func (g *depGraph) computeStages() [][]int {
	indegree := make([]int, len(g.units))
	for _, succ := range g.succ {
		for _, n := range succ {
			indegree[n]++
		}
	}

	var current []int
	for n, d := range indegree {
		if d == 0 {
			current = append(current, n)
		}
	}

	stages := [][]int{}
	for len(current) > 0 {
		stages = append(stages, current)
		var next []int
		for _, n := range current {
			for _, s := range g.succ[n] {
				indegree[s]--
				if indegree[s] == 0 {
					next = append(next, s)
				}
			}
		}
		slices.Sort(next)
		current = next
	}
	return stages
}
