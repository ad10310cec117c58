// Package serial validates and advances serial/prefix configurations
// for the local part of generated numbers.
package serial

import (
	"errors"
	"fmt"
	"strconv"
)

// Placement controls where serial digits sit relative to random digits.
type Placement string

const (
	PlacePrefix Placement = "prefix"
	PlaceSuffix Placement = "suffix"
)

// ErrInvalidConfig is wrapped by all configuration validation failures.
var ErrInvalidConfig = errors.New("invalid serial config")

// ErrOverflow is returned by Counter.Next when the counter has grown
// wider than the local-part digit budget.
var ErrOverflow = errors.New("serial exceeds local length")

// Config describes how the local part is composed from a serial counter.
//
// Modes, in order of precedence:
//   - Enabled=false: every digit is random.
//   - FixedPrefixLen>0: the first FixedPrefixLen digits of Start form a
//     constant prefix, the rest is random. The counter never advances.
//   - SequentialOnly: the whole local part is the counter, zero-padded.
//   - otherwise: counter digits placed per Placement, remainder random.
type Config struct {
	Enabled        bool      `json:"enabled"`
	Placement      Placement `json:"placement"`
	Start          uint64    `json:"start"`
	Step           uint64    `json:"step"`
	SequentialOnly bool      `json:"sequential_only"`
	FixedPrefixLen int       `json:"fixed_prefix_len,omitempty"`
}

// StartDigits returns Start as a decimal digit string.
func (c Config) StartDigits() string {
	return strconv.FormatUint(c.Start, 10)
}

// FixedPrefix returns the constant prefix for fixed-prefix mode.
// Only meaningful after Validate has passed.
func (c Config) FixedPrefix() string {
	return c.StartDigits()[:c.FixedPrefixLen]
}

// Validate checks the configuration against the local-part digit budget.
// Width mismatches are an explicit failure, never a silent truncation.
func (c Config) Validate(localLength int) error {
	if localLength <= 0 {
		return fmt.Errorf("%w: local length must be positive, got %d", ErrInvalidConfig, localLength)
	}
	if !c.Enabled {
		return nil
	}

	switch c.Placement {
	case "", PlacePrefix, PlaceSuffix:
	default:
		return fmt.Errorf("%w: placement must be %q or %q, got %q", ErrInvalidConfig, PlacePrefix, PlaceSuffix, c.Placement)
	}

	start := c.StartDigits()

	if c.FixedPrefixLen != 0 {
		if c.SequentialOnly {
			return fmt.Errorf("%w: fixed-prefix and sequential-only modes are mutually exclusive", ErrInvalidConfig)
		}
		if c.FixedPrefixLen < 0 {
			return fmt.Errorf("%w: fixed prefix length must be positive, got %d", ErrInvalidConfig, c.FixedPrefixLen)
		}
		if c.FixedPrefixLen > len(start) {
			return fmt.Errorf("%w: fixed prefix length %d exceeds start value width %d", ErrInvalidConfig, c.FixedPrefixLen, len(start))
		}
		if c.FixedPrefixLen > localLength {
			return fmt.Errorf("%w: fixed prefix length %d exceeds local length %d", ErrInvalidConfig, c.FixedPrefixLen, localLength)
		}
		return nil
	}

	if c.Step < 1 {
		return fmt.Errorf("%w: step must be >= 1, got %d", ErrInvalidConfig, c.Step)
	}
	if len(start) > localLength {
		return fmt.Errorf("%w: start value %q has %d digits, exceeding local length %d", ErrInvalidConfig, start, len(start), localLength)
	}

	return nil
}

// Counter yields successive serial digit strings.
type Counter struct {
	current uint64
	step    uint64
}

// NewCounter creates a counter starting at cfg.Start advancing by cfg.Step.
func NewCounter(cfg Config) *Counter {
	return &Counter{current: cfg.Start, step: cfg.Step}
}

// Next returns the current serial as digits and advances the counter.
// It fails with ErrOverflow once the value no longer fits localLength.
func (c *Counter) Next(localLength int) (string, error) {
	s := strconv.FormatUint(c.current, 10)
	if len(s) > localLength {
		return "", fmt.Errorf("%w: %q has %d digits, budget is %d", ErrOverflow, s, len(s), localLength)
	}
	c.current += c.step
	return s, nil
}
