package matcher

import (
	"errors"
	"fmt"

	"github.com/vk/flowbricks/internal/model"
)

// ErrInvalidQuery marks a query whose hard filters cannot be applied.
var ErrInvalidQuery = errors.New("invalid query")

// ValidateQuery rejects queries whose hard filters are malformed.
func ValidateQuery(q model.Query) error {
	if q.MinVersion == "" {
		return nil
	}
	if _, err := model.CanonicalVersion(q.MinVersion); err != nil {
		return fmt.Errorf("%w: min version: %w", ErrInvalidQuery, err)
	}
	return nil
}

// passesFilters applies the exact-match hard filters.
func passesFilters(u *model.UnitSummary, q model.Query) bool {
	if q.Category != "" && u.Category != q.Category {
		return false
	}
	if q.Domain != "" && u.Domain != q.Domain {
		return false
	}
	if q.Protected != nil && u.Protected != *q.Protected {
		return false
	}
	if q.MinVersion != "" && !atLeast(u.Version, q.MinVersion) {
		return false
	}
	return true
}

// atLeast reports whether version >= minimum. A minimum that is not a
// semantic version admits nothing.
func atLeast(version, minimum string) bool {
	if _, err := model.CanonicalVersion(minimum); err != nil {
		return false
	}
	return model.CompareVersions(version, minimum) >= 0
}
