package boundary

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/vk/flowbricks/internal/ctxlog"
	"github.com/vk/flowbricks/internal/model"
)

const (
	reasonNoInput  = "region has no external input"
	reasonNoOutput = "region has no external output"
)

// Analyzer derives RegionBoundary values. It holds no state and is safe for
// concurrent use as long as the graph snapshot is not mutated mid-call.
type Analyzer struct{}

// New creates a boundary analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Analyze classifies the region's data nodes and validates containment.
func (a *Analyzer) Analyze(ctx context.Context, region model.Region, graph *model.Graph) model.RegionBoundary {
	logger := ctxlog.FromContext(ctx).With("region", region.Name)
	logger.Debug("Analyzing region boundary.", "node_count", len(region.Nodes))

	b := model.RegionBoundary{
		Region:   region.Name,
		Inputs:   []string{},
		Outputs:  []string{},
		Internal: []string{},
	}

	m, missing := newMembership(region, graph)
	if len(missing) > 0 {
		reasons := make([]string, len(missing))
		for i, id := range missing {
			reasons[i] = fmt.Sprintf("node %q not found in graph", id)
		}
		b.ValidationError = strings.Join(reasons, "; ")
		logger.Debug("Region references unknown nodes.", "missing", missing)
		return b
	}

	inputs, outputs, internal := make(set), make(set), make(set)
	for _, id := range m.data {
		switch classify(graph, graph.Nodes[id], m.transforms) {
		case roleInput:
			inputs.add(id)
		case roleOutput:
			outputs.add(id)
		default:
			internal.add(id)
		}
	}
	b.Inputs, b.Outputs, b.Internal = inputs.sorted(), outputs.sorted(), internal.sorted()

	reasons := containmentViolations(graph, m.transforms.sorted(), inputs, outputs, internal)
	if len(inputs) == 0 {
		reasons = append(reasons, reasonNoInput)
	}
	if len(outputs) == 0 {
		reasons = append(reasons, reasonNoOutput)
	}

	b.IsValid = len(reasons) == 0
	b.ValidationError = strings.Join(reasons, "; ")
	logger.Debug("Region boundary analyzed.",
		"inputs", len(b.Inputs),
		"outputs", len(b.Outputs),
		"internal", len(b.Internal),
		"is_valid", b.IsValid,
	)
	return b
}

type role int

const (
	roleInput role = iota
	roleOutput
	roleInternal
)

// classify applies the input/output/internal rules to a single data node.
// Neighbours missing from the graph are treated as transforms outside the
// region.
func classify(graph *model.Graph, n *model.GraphNode, transforms set) role {
	producedInside := false
	for _, p := range uniq(n.Predecessors) {
		if isTransform(graph, p) && transforms.has(p) {
			producedInside = true
			break
		}
	}
	if !producedInside {
		return roleInput
	}

	consumers := 0
	for _, s := range uniq(n.Successors) {
		if !isTransform(graph, s) {
			continue
		}
		consumers++
		if !transforms.has(s) {
			return roleOutput
		}
	}
	if consumers == 0 {
		return roleOutput
	}
	return roleInternal
}

// containmentViolations checks that each transform only reads inputs or
// internal nodes and only writes outputs or internal nodes.
func containmentViolations(graph *model.Graph, transforms []string, inputs, outputs, internal set) []string {
	var reasons []string
	for _, tid := range transforms {
		t := graph.Nodes[tid]
		for _, r := range uniq(t.Predecessors) {
			if isTransformNode(graph, r) {
				continue
			}
			if !inputs.has(r) && !internal.has(r) {
				reasons = append(reasons, fmt.Sprintf("transform %q reads %q which is neither an input nor internal to the region", tid, r))
			}
		}
		for _, w := range uniq(t.Successors) {
			if isTransformNode(graph, w) {
				continue
			}
			if !outputs.has(w) && !internal.has(w) {
				reasons = append(reasons, fmt.Sprintf("transform %q writes %q which is neither an output nor internal to the region", tid, w))
			}
		}
	}
	return reasons
}

// isTransform treats unknown ids as transforms; used when looking for
// producers and consumers of a data node.
func isTransform(graph *model.Graph, id string) bool {
	n, ok := graph.Node(id)
	return !ok || n.Kind == model.NodeTransform
}

// isTransformNode only matches ids that are known transforms; used when
// looking at what a transform reads or writes.
func isTransformNode(graph *model.Graph, id string) bool {
	n, ok := graph.Node(id)
	return ok && n.Kind == model.NodeTransform
}

func uniq(ids []string) []string {
	if len(ids) < 2 {
		return ids
	}
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
