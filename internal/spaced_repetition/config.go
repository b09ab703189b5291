package spaced_repetition

import (
	"encoding"
	"fmt"
)

// LeechMethod decides how a session treats items that fail too often.
type LeechMethod int

const (
	LeechNone LeechMethod = iota // Leeches are reviewed like any other item.
	LeechSkip                    // Leeches are left out of sessions.
	LeechWarn                    // Leeches are reviewed but flagged.
)

var (
	leechMethodNames  = [...]string{LeechNone: "none", LeechSkip: "skip", LeechWarn: "warn"}
	leechMethodByName = map[string]LeechMethod{"none": LeechNone, "skip": LeechSkip, "warn": LeechWarn}
)

var (
	_ fmt.Stringer             = LeechMethod(0)
	_ encoding.TextMarshaler   = LeechMethod(0)
	_ encoding.TextUnmarshaler = (*LeechMethod)(nil)
)

func (m LeechMethod) String() string {
	if m >= LeechNone && m <= LeechWarn {
		return leechMethodNames[m]
	}
	return fmt.Sprintf("LeechMethod(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m LeechMethod) MarshalText() ([]byte, error) {
	if m < LeechNone || m > LeechWarn {
		return nil, fmt.Errorf("%w: leech method %d", ErrInvalidConfig, int(m))
	}
	return []byte(leechMethodNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *LeechMethod) UnmarshalText(text []byte) error {
	v, ok := leechMethodByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: leech method %q", ErrInvalidConfig, text)
	}
	*m = v
	return nil
}

// Config holds the tunables shared by every algorithm and by the classifier.
type Config struct {
	// FailureQuality is the highest grade that still counts as a failure (1 or 2).
	FailureQuality QualityResponse `json:"failure_quality"`
	// LearnFraction controls how fast SM5 optimal factors and Simple8
	// factors converge, in (0, 1).
	LearnFraction         float64     `json:"learn_fraction"`
	AddRandomNoise        bool        `json:"add_random_noise"`
	AdjustForEarlyLate    bool        `json:"adjust_for_early_late"`
	OverdueIntervalFactor float64     `json:"overdue_interval_factor"`
	DaysBeforeOld         int         `json:"days_before_old"`
	LeechFailureThreshold int         `json:"leech_failure_threshold"` // 0 disables leech detection
	LeechMethod           LeechMethod `json:"leech_method"`
	// SM5InitialInterval is the optimal factor, in days, seeded for the first repetition.
	SM5InitialInterval float64 `json:"sm5_initial_interval"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		FailureQuality:        QualityIncorrectFamiliar,
		LearnFraction:         0.5,
		AddRandomNoise:        false,
		AdjustForEarlyLate:    false,
		OverdueIntervalFactor: 1.2,
		DaysBeforeOld:         10,
		LeechFailureThreshold: 15,
		LeechMethod:           LeechSkip,
		SM5InitialInterval:    4.0,
	}
}

// Validate checks every field against its allowed range.
func (c Config) Validate() error {
	switch {
	case c.FailureQuality != QualityIncorrect && c.FailureQuality != QualityIncorrectFamiliar:
		return fmt.Errorf("%w: failure quality %d not in {1, 2}", ErrInvalidConfig, int(c.FailureQuality))
	case c.LearnFraction <= 0 || c.LearnFraction >= 1:
		return fmt.Errorf("%w: learn fraction %f out of range (0, 1)", ErrInvalidConfig, c.LearnFraction)
	case c.OverdueIntervalFactor < 1:
		return fmt.Errorf("%w: overdue interval factor %f below 1", ErrInvalidConfig, c.OverdueIntervalFactor)
	case c.DaysBeforeOld < 0:
		return fmt.Errorf("%w: days before old %d is negative", ErrInvalidConfig, c.DaysBeforeOld)
	case c.LeechFailureThreshold < 0:
		return fmt.Errorf("%w: leech failure threshold %d is negative", ErrInvalidConfig, c.LeechFailureThreshold)
	case c.LeechMethod < LeechNone || c.LeechMethod > LeechWarn:
		return fmt.Errorf("%w: leech method %d", ErrInvalidConfig, int(c.LeechMethod))
	case c.SM5InitialInterval <= 0:
		return fmt.Errorf("%w: sm5 initial interval %f must be positive", ErrInvalidConfig, c.SM5InitialInterval)
	}
	return nil
}

// IsFailure reports whether q counts as a failed recall under this config.
func (c Config) IsFailure(q QualityResponse) bool {
	return q <= c.FailureQuality
}
