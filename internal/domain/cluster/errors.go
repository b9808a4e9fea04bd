package cluster

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidTemporalThreshold = errors.New("temporal threshold must be positive")
	ErrInvalidSpatialThreshold  = errors.New("spatial threshold must be positive or infinite")
	ErrInvalidBurstThreshold    = errors.New("burst threshold must be positive")
	ErrInvalidBurstSize         = errors.New("invalid burst size bounds")
	ErrUnknownContext           = errors.New("unknown clustering context")
)
