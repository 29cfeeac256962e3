package config

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// WrapLoad marks an error as a config-loading failure.
func WrapLoad(err error) error {
	return fmt.Errorf("%w: %w", ErrLoadConfig, err)
}

// WrapInvalid marks an error as a config-validation failure.
func WrapInvalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}
