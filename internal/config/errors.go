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

// NewInvalid returns an ErrInvalidConfig carrying reason.
func NewInvalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, reason)
}

// wrapLoad tags a provider or decode failure with ErrLoadConfig.
func wrapLoad(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrLoadConfig, step, err)
}
