package spaced_repetition

import (
	"encoding"
	"fmt"
)

// Algorithm selects one of the interval calculators.
type Algorithm int

const (
	SM2     Algorithm = iota + 1 // SuperMemo-2.
	SM5                          // SuperMemo-5 with an optimal-factor matrix.
	Simple8                      // Simplified SuperMemo-8.
)

var (
	algorithmNames  = [...]string{SM2: "sm2", SM5: "sm5", Simple8: "simple8"}
	algorithmByName = map[string]Algorithm{"sm2": SM2, "sm5": SM5, "simple8": Simple8}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Algorithm(0)
	_ encoding.TextMarshaler   = Algorithm(0)
	_ encoding.TextUnmarshaler = (*Algorithm)(nil)
)

// IsValid reports whether a is one of SM2, SM5 or Simple8.
func (a Algorithm) IsValid() bool {
	return a >= SM2 && a <= Simple8
}

// String returns "sm2", "sm5" or "simple8", or "Algorithm(n)" for invalid values.
func (a Algorithm) String() string {
	if a.IsValid() {
		return algorithmNames[a]
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAlgorithm, int(a))
	}
	return []byte(algorithmNames[a]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	v, ok := algorithmByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidAlgorithm, text)
	}
	*a = v
	return nil
}

// ParseAlgorithm parses the configured algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	var a Algorithm
	if err := a.UnmarshalText([]byte(name)); err != nil {
		return 0, err
	}
	return a, nil
}
