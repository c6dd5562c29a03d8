package resolver

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidHint wraps every rejected wiring hint.
	ErrInvalidHint = errors.New("invalid wiring hint")
	// ErrDuplicateUnit is returned when two selected units share an id.
	ErrDuplicateUnit = errors.New("duplicate unit")
)

// CircularDependencyError reports a dependency cycle. Path lists the unit ids
// along the cycle in data-flow order and repeats the first id at the end.
type CircularDependencyError struct {
	Path []string
}

func (e *CircularDependencyError) Error() string {
	return "circular dependency detected: " + strings.Join(e.Path, " -> ")
}
