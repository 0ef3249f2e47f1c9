package query

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery matches every *ConfigurationError via errors.Is.
var ErrInvalidQuery = errors.New("invalid query")

// ConfigurationError reports a query that can never be valid: an unknown or
// empty field path, a bad sort direction, a search with nowhere to look.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid query: %s", e.Reason)
	}
	return fmt.Sprintf("invalid query: field %q: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidQuery
}
