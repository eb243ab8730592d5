package core

import "errors"

// ErrInvalidParameter reports a generation parameter that violates its
// precondition. Callers match it with errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")
