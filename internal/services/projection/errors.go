package projection

import (
	"errors"
	"fmt"
)

// ErrValidation is returned for structurally invalid requests
var ErrValidation = errors.New("validation failed")

// ValidationError names the offending request field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
