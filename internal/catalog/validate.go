package catalog

import (
	"fmt"
	"strings"

	"github.com/vk/flowbricks/internal/model"
)

// validateUnit checks a single summary and returns a normalized copy.
func validateUnit(u model.UnitSummary) (model.UnitSummary, error) {
	u = u.Clone()
	u.ID = strings.TrimSpace(u.ID)
	if u.ID == "" {
		return u, fmt.Errorf("%w: unit_id is empty", ErrInvalidUnit)
	}
	if _, err := model.CanonicalVersion(u.Version); err != nil {
		return u, fmt.Errorf("%w: unit %q: %v", ErrInvalidUnit, u.ID, err)
	}
	if err := validatePorts(u.Inputs); err != nil {
		return u, fmt.Errorf("%w: unit %q inputs: %v", ErrInvalidUnit, u.ID, err)
	}
	if err := validatePorts(u.Outputs); err != nil {
		return u, fmt.Errorf("%w: unit %q outputs: %v", ErrInvalidUnit, u.ID, err)
	}
	for i := range u.Outputs {
		u.Outputs[i].Required = false
	}
	return u, nil
}

func validatePorts(ports []model.Port) error {
	seen := make(map[string]struct{}, len(ports))
	for _, p := range ports {
		if p.Name == "" {
			return fmt.Errorf("port name is empty")
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("duplicate port %q", p.Name)
		}
		seen[p.Name] = struct{}{}
		if p.Kind == "" {
			return fmt.Errorf("port %q has no kind", p.Name)
		}
		cols := make(map[string]struct{}, len(p.Schema))
		for _, c := range p.Schema {
			if c.Name == "" {
				return fmt.Errorf("port %q has a column without a name", p.Name)
			}
			if _, dup := cols[c.Name]; dup {
				return fmt.Errorf("port %q has duplicate column %q", p.Name, c.Name)
			}
			cols[c.Name] = struct{}{}
		}
	}
	return nil
}
