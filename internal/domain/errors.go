package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three outcomes the API distinguishes. Ownership
// denials are reported as ErrNotFound on purpose: the response for "not
// yours" must be byte-identical to "does not exist" so that probing ids
// yields no signal.
var (
	ErrNotFound        = errors.New("item not found")
	ErrUnauthenticated = errors.New("could not validate credentials")
	ErrValidation      = errors.New("validation failed")
)

// Validationf wraps ErrValidation with a client-facing detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}
