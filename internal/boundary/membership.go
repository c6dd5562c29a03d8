package boundary

import (
	"slices"

	"github.com/vk/flowbricks/internal/model"
)

type set map[string]struct{}

func (s set) add(id string)      { s[id] = struct{}{} }
func (s set) has(id string) bool { _, ok := s[id]; return ok }

func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// membership splits a region into its data nodes and its transform set.
type membership struct {
	data       []string
	transforms set
}

// newMembership resolves every region id against the graph. Ids that the
// graph does not know are returned sorted in missing.
func newMembership(region model.Region, graph *model.Graph) (membership, []string) {
	m := membership{transforms: make(set)}
	missingSet := make(set)
	dataSet := make(set)

	for _, id := range region.Transforms {
		n, ok := graph.Node(id)
		if !ok {
			missingSet.add(id)
			continue
		}
		if n.Kind == model.NodeTransform {
			m.transforms.add(id)
		} else {
			dataSet.add(id)
		}
	}
	for _, id := range region.Nodes {
		n, ok := graph.Node(id)
		if !ok {
			missingSet.add(id)
			continue
		}
		switch n.Kind {
		case model.NodeTransform:
			m.transforms.add(id)
		case model.NodeData:
			dataSet.add(id)
		}
	}
	m.data = dataSet.sorted()
	return m, missingSet.sorted()
}
