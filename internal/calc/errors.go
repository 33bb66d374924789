// Package calc is the salon's computation engine: forecast snapshots, risk
// flags and project cost roll-ups. Every function here is pure; callers own
// storage, transport and logging.
package calc

import (
	"errors"
	"fmt"
)

// ValidationError rejects malformed or out-of-range input. One invalid field
// rejects the whole computation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// errArithmeticDegenerate marks a ratio with a zero denominator. It never
// leaves this package: ratio resolves it to 0.
var errArithmeticDegenerate = errors.New("ratio with zero denominator")
