// Package snapshot reads crawler output: a graph of data and transform nodes
// plus the candidate regions to analyze.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/vk/flowbricks/internal/ctxlog"
	"github.com/vk/flowbricks/internal/model"
	"gopkg.in/yaml.v3"
)

// Snapshot is a decoded, validated crawler document.
type Snapshot struct {
	Graph   *model.Graph
	Regions []model.Region
}

type document struct {
	Nodes   []*model.GraphNode `yaml:"nodes"`
	Regions []model.Region     `yaml:"regions"`
}

// Decode strictly reads a YAML or JSON snapshot. Edges listed on only one
// side are mirrored onto the other so predecessor and successor sets agree.
// Edges to ids outside the snapshot are kept as they are.
func Decode(r io.Reader) (*Snapshot, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	g := &model.Graph{Nodes: make(map[string]*model.GraphNode, len(doc.Nodes))}
	for i, n := range doc.Nodes {
		if n == nil || n.ID == "" {
			return nil, fmt.Errorf("node #%d has no id", i)
		}
		if _, dup := g.Nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}
		kind, err := model.ParseNodeKind(string(n.Kind))
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
		n.Kind = kind
		g.Nodes[n.ID] = n
	}
	mirrorEdges(g)

	seen := make(map[string]struct{}, len(doc.Regions))
	for i, r := range doc.Regions {
		if r.Name == "" {
			return nil, fmt.Errorf("region #%d has no name", i)
		}
		if _, dup := seen[r.Name]; dup {
			return nil, fmt.Errorf("duplicate region %q", r.Name)
		}
		seen[r.Name] = struct{}{}
	}

	return &Snapshot{Graph: g, Regions: doc.Regions}, nil
}

// Load reads the snapshot file at path.
func Load(ctx context.Context, path string) (*Snapshot, error) {
	logger := ctxlog.FromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("Snapshot loaded.", "path", path, "nodes", len(s.Graph.Nodes), "regions", len(s.Regions))
	return s, nil
}

// Region returns the region with the given name.
func (s *Snapshot) Region(name string) (model.Region, bool) {
	for _, r := range s.Regions {
		if r.Name == name {
			return r, true
		}
	}
	return model.Region{}, false
}

func mirrorEdges(g *model.Graph) {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		n := g.Nodes[id]
		for _, s := range n.Successors {
			if other, ok := g.Nodes[s]; ok && !slices.Contains(other.Predecessors, id) {
				other.Predecessors = append(other.Predecessors, id)
			}
		}
		for _, p := range n.Predecessors {
			if other, ok := g.Nodes[p]; ok && !slices.Contains(other.Successors, id) {
				other.Successors = append(other.Successors, id)
			}
		}
	}
}
