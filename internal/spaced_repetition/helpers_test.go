package spaced_repetition

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func floatPtr(v float64) *float64 { return &v }

// newTestCalculator builds a calculator from DefaultConfig (noise and
// early/late adjustment off) after applying mutate.
func newTestCalculator(t *testing.T, mutate func(*Config), opts ...Option) *Calculator {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := NewCalculator(cfg, opts...)
	require.NoError(t, err)
	return c
}

func fixedDispersal(v float64) Option {
	return WithDispersal(func() float64 { return v })
}
