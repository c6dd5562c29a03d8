package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vk/flowbricks/internal/model"
)

// Index is an immutable, validated collection of unit summaries with
// lookups by id, category and tag. Units are kept sorted by id.
type Index struct {
	units      []model.UnitSummary
	byID       map[string]int
	byCategory map[string][]int
	byTag      map[string][]int
}

// NewIndex validates the given summaries and builds the secondary indexes.
// The input slice is not retained.
func NewIndex(units []model.UnitSummary) (*Index, error) {
	idx := &Index{
		units:      make([]model.UnitSummary, 0, len(units)),
		byID:       make(map[string]int, len(units)),
		byCategory: make(map[string][]int),
		byTag:      make(map[string][]int),
	}

	seen := make(map[string]struct{}, len(units))
	for _, raw := range units {
		u, err := validateUnit(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[u.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate unit_id %q", ErrInvalidUnit, u.ID)
		}
		seen[u.ID] = struct{}{}
		idx.units = append(idx.units, u)
	}
	slices.SortFunc(idx.units, func(a, b model.UnitSummary) int {
		return strings.Compare(a.ID, b.ID)
	})

	for i, u := range idx.units {
		idx.byID[u.ID] = i
		if u.Category != "" {
			idx.byCategory[u.Category] = append(idx.byCategory[u.Category], i)
		}
		tags := make(map[string]struct{}, len(u.Tags))
		for _, tag := range u.Tags {
			key := normalizeTag(tag)
			if _, dup := tags[key]; dup || key == "" {
				continue
			}
			tags[key] = struct{}{}
			idx.byTag[key] = append(idx.byTag[key], i)
		}
	}
	return idx, nil
}

// Len returns the number of cataloged units.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.units)
}

// All returns copies of every unit, sorted by id.
func (idx *Index) All() []model.UnitSummary {
	if idx == nil {
		return nil
	}
	return idx.collect(nil, true)
}

// Get returns a copy of the unit with the given id.
func (idx *Index) Get(id string) (model.UnitSummary, bool) {
	if idx == nil {
		return model.UnitSummary{}, false
	}
	i, ok := idx.byID[id]
	if !ok {
		return model.UnitSummary{}, false
	}
	return idx.units[i].Clone(), true
}

// ByCategory returns the units whose category equals category exactly.
func (idx *Index) ByCategory(category string) []model.UnitSummary {
	if idx == nil {
		return nil
	}
	return idx.collect(idx.byCategory[category], false)
}

// ByTag returns the units carrying tag, compared case-insensitively.
func (idx *Index) ByTag(tag string) []model.UnitSummary {
	if idx == nil {
		return nil
	}
	return idx.collect(idx.byTag[normalizeTag(tag)], false)
}

// Categories returns every distinct category, sorted.
func (idx *Index) Categories() []string {
	if idx == nil {
		return nil
	}
	return sortedKeys(idx.byCategory)
}

// Tags returns every distinct lower-cased tag, sorted.
func (idx *Index) Tags() []string {
	if idx == nil {
		return nil
	}
	return sortedKeys(idx.byTag)
}

// Domains returns every distinct domain, sorted.
func (idx *Index) Domains() []string {
	if idx == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, u := range idx.units {
		if u.Domain != "" {
			seen[u.Domain] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Each calls fn for every unit in id order without copying. fn must not
// modify the unit.
func (idx *Index) Each(fn func(u *model.UnitSummary)) {
	if idx == nil {
		return
	}
	for i := range idx.units {
		fn(&idx.units[i])
	}
}

func (idx *Index) collect(positions []int, all bool) []model.UnitSummary {
	if all {
		out := make([]model.UnitSummary, len(idx.units))
		for i, u := range idx.units {
			out[i] = u.Clone()
		}
		return out
	}
	out := make([]model.UnitSummary, 0, len(positions))
	for _, i := range positions {
		out = append(out, idx.units[i].Clone())
	}
	return out
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
