package suggest

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidWeights = errors.New("score weights must sum to 1.0")
)
