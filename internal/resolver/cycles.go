package resolver

const (
	white = iota
	gray
	black
)

type frame struct {
	node int
	next int
}

// detectCycles runs a three-colour depth-first search without recursion.
// Roots and neighbours are visited in id order, so the reported cycle is
// stable across calls.
func (g *depGraph) detectCycles() error {
	color := make([]uint8, len(g.units))
	var stack []frame

	for root := range g.units {
		if color[root] != white {
			continue
		}
		color[root] = gray
		stack = append(stack[:0], frame{node: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succ := g.succ[top.node]
			if top.next == len(succ) {
				color[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}
			next := succ[top.next]
			top.next++

			switch color[next] {
			case white:
				color[next] = gray
				stack = append(stack, frame{node: next})
			case gray:
				return &CircularDependencyError{Path: g.cyclePath(stack, next)}
			}
		}
	}
	return nil
}

// cyclePath extracts the gray path from the first occurrence of start to the
// top of the stack and closes it with start.
func (g *depGraph) cyclePath(stack []frame, start int) []string {
	i := len(stack) - 1
	for stack[i].node != start {
		i--
	}
	nodes := make([]int, 0, len(stack)-i+1)
	for _, f := range stack[i:] {
		nodes = append(nodes, f.node)
	}
	return g.ids(append(nodes, start))
}
