package cli

import (
	"errors"

	"github.com/vk/flowbricks/internal/matcher"
	"github.com/vk/flowbricks/internal/resolver"
)

// Exit codes returned through ExitError.
const (
	ExitFailure    = 1
	ExitUsage      = 2
	ExitCycle      = 3
	ExitIncomplete = 4
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

// classify maps an application error to its exit code.
func classify(err error) error {
	var exitErr *ExitError
	if err == nil || errors.As(err, &exitErr) {
		return err
	}
	var cycle *resolver.CircularDependencyError
	if errors.As(err, &cycle) {
		return &ExitError{Code: ExitCycle, Message: err.Error()}
	}
	if errors.Is(err, resolver.ErrInvalidHint) || errors.Is(err, resolver.ErrDuplicateUnit) ||
		errors.Is(err, matcher.ErrInvalidQuery) {
		return usageError(err)
	}
	return err
}
