package izhikevich

import (
	"errors"
	"fmt"
)

var (
	// ErrNonPositiveStep is the cause of a ConfigurationError on a zero or negative time step.
	ErrNonPositiveStep = errors.New("time step must be positive")
	// ErrNonFinite is the cause of a ConfigurationError on a NaN or infinite value.
	ErrNonFinite = errors.New("value must be finite")
)

// ConfigurationError is returned when the model is configured or updated with an unusable value.
// The model is left untouched when this error is returned.
type ConfigurationError struct {
	Field string
	Value float64
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("izhikevich: invalid %s=%g: %s", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
