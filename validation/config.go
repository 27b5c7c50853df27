package validation

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ConfigValidator collects every configuration error instead of stopping at the first.
type ConfigValidator struct {
	name   string
	errors []error
}

func NewConfigValidator(configName string) *ConfigValidator {
	return &ConfigValidator{name: configName}
}

// Required validates that a string field is not empty.
func (cv *ConfigValidator) Required(field, value string) *ConfigValidator {
	if value == "" {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: required field is empty", cv.name, field))
	}
	return cv
}

// PositiveDuration validates that a duration field is greater than zero.
func (cv *ConfigValidator) PositiveDuration(field string, value time.Duration) *ConfigValidator {
	if value <= 0 {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: duration %s must be positive", cv.name, field, value))
	}
	return cv
}

// NonNegativeDuration validates that a duration field is not negative.
func (cv *ConfigValidator) NonNegativeDuration(field string, value time.Duration) *ConfigValidator {
	if value < 0 {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: duration %s must not be negative", cv.name, field, value))
	}
	return cv
}

// OneOf validates that value is one of allowed.
func (cv *ConfigValidator) OneOf(field, value string, allowed []string) *ConfigValidator {
	if !slices.Contains(allowed, value) {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: %q is not one of %v", cv.name, field, value, allowed))
	}
	return cv
}

// Custom runs fn and records its error, if any.
func (cv *ConfigValidator) Custom(field string, fn func() error) *ConfigValidator {
	if err := fn(); err != nil {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: %w", cv.name, field, err))
	}
	return cv
}

func (cv *ConfigValidator) HasErrors() bool {
	return len(cv.errors) > 0
}

// Err joins every collected error, or returns nil.
func (cv *ConfigValidator) Err() error {
	return errors.Join(cv.errors...)
}
