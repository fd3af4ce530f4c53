package nodeset

import (
	"errors"
	"fmt"
)

// ErrMalformedPattern matches every MalformedPatternError with errors.Is.
var ErrMalformedPattern = errors.New("malformed host pattern")

// MalformedPatternError reports a host pattern that cannot be expanded.
type MalformedPatternError struct {
	// Pattern is the full pattern being expanded
	Pattern string
	// Position is the byte offset in Pattern where the problem was found
	Position int
	// Reason describes the problem
	Reason string
}

func (e *MalformedPatternError) Error() string {
	return fmt.Sprintf("malformed host pattern %q at position %d: %s", e.Pattern, e.Position, e.Reason)
}

// Is matches ErrMalformedPattern, or another MalformedPatternError for the
// same pattern and position.
func (e *MalformedPatternError) Is(target error) bool {
	if target == ErrMalformedPattern {
		return true
	}
	t, ok := target.(*MalformedPatternError)
	if !ok {
		return false
	}
	return e.Pattern == t.Pattern && e.Position == t.Position
}
