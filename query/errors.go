package query

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery matches every InvalidQueryError with errors.Is.
var ErrInvalidQuery = errors.New("invalid query")

// InvalidQueryError reports a query that does not follow the grammar:
// unmatched parentheses, misplaced operators, empty groups, unknown
// characters, empty input or a breached limit.
type InvalidQueryError struct {
	// Query is the full query text, when known
	Query string
	// Position is the byte offset in Query where the problem was found
	Position int
	// Reason describes the problem
	Reason string
}

func (e *InvalidQueryError) Error() string {
	if e.Query == "" {
		return fmt.Sprintf("invalid query at position %d: %s", e.Position, e.Reason)
	}
	return fmt.Sprintf("invalid query at position %d: %s (query: %q)", e.Position, e.Reason, e.Query)
}

// Is matches ErrInvalidQuery, or another InvalidQueryError at the same
// position.
func (e *InvalidQueryError) Is(target error) bool {
	if target == ErrInvalidQuery {
		return true
	}
	t, ok := target.(*InvalidQueryError)
	if !ok {
		return false
	}
	return e.Position == t.Position
}

func invalid(pos int, format string, args ...interface{}) error {
	return &InvalidQueryError{Position: pos, Reason: fmt.Sprintf(format, args...)}
}
