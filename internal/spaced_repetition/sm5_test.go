package spaced_repetition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSM5FirstReviewUsesInitialInterval(t *testing.T) {
	c := newTestCalculator(t, nil)
	var empty Matrix

	got, m, err := c.SM5(NewState(), Review{Quality: QualityPerfect}, empty)
	require.NoError(t, err)
	// of = 4.0 (initial), new of = 0.5*4 + 0.5*4*(0.72+0.35) = 4.14
	assert.InDelta(t, 4.14, got.LastInterval, tolerance)
	assert.Equal(t, 2, got.Repetitions)
	assert.InDelta(t, 2.6, *got.EaseFactor, tolerance)
	assert.Equal(t, 1, got.TotalRepeats)

	of, ok := m.Lookup(1, 2.6)
	require.True(t, ok)
	assert.Equal(t, 4.14, of)
	assert.Equal(t, 0, empty.Len())
}

func TestSM5SecondReviewScalesLastInterval(t *testing.T) {
	c := newTestCalculator(t, nil)
	in := State{LastInterval: 4.14, Repetitions: 2, EaseFactor: floatPtr(2.6), MeanQuality: floatPtr(5), TotalRepeats: 1}

	got, m, err := c.SM5(in, Review{Quality: QualityCorrectHesitation}, NewMatrix())
	require.NoError(t, err)
	// of seeded from ef = 2.6; new of = 0.5*2.6 + 0.5*2.6*1.0 = 2.6
	assert.InDelta(t, 2.6*4.14, got.LastInterval, tolerance)
	assert.Equal(t, 3, got.Repetitions)
	assert.InDelta(t, 4.5, *got.MeanQuality, tolerance)
	of, ok := m.Lookup(2, 2.6)
	require.True(t, ok)
	assert.Equal(t, 2.6, of)
}

func TestSM5ReadsStoredOptimalFactor(t *testing.T) {
	c := newTestCalculator(t, nil)
	m := NewMatrix(MatrixEntry{Repetition: 3, EaseFactor: 2.5, OptimalFactor: 3.0})
	in := State{LastInterval: 10, Repetitions: 3, EaseFactor: floatPtr(2.5), TotalRepeats: 4}

	got, updated, err := c.SM5(in, Review{Quality: QualityCorrectHesitation}, m)
	require.NoError(t, err)
	// q=4 keeps both ef (2.5) and of (3.0 * 1.0): interval = 3.0 * 10
	assert.InDelta(t, 30.0, got.LastInterval, tolerance)
	assert.Equal(t, 3.0, updated.OptimalFactor(3, 2.5, 0))
}

func TestSM5FailureKeepsEaseButUpdatesMatrix(t *testing.T) {
	c := newTestCalculator(t, nil)
	in := State{LastInterval: 10, Repetitions: 3, EaseFactor: floatPtr(2.0), MeanQuality: floatPtr(4), TotalRepeats: 4}
	prior := NewMatrix()

	got, m, err := c.SM5(in, Review{Quality: QualityIncorrect}, prior)
	require.NoError(t, err)
	assert.Equal(t, FailedInterval, got.LastInterval)
	assert.Equal(t, 1, got.Repetitions)
	assert.Equal(t, 2.0, *got.EaseFactor)
	assert.Equal(t, 1, got.Failures)
	assert.Equal(t, 5, got.TotalRepeats)

	// next ef = 2.0 + 0.1 - 4*(0.08+0.08) = 1.46; new of = 0.5*2 + 0.5*2*0.79 = 1.79
	of, ok := m.Lookup(3, 1.46)
	require.True(t, ok)
	assert.Equal(t, 1.79, of)
	assert.Equal(t, 0, prior.Len())
}

func TestSM5OptimalFactorFloor(t *testing.T) {
	c := newTestCalculator(t, nil)
	in := State{LastInterval: 3, Repetitions: 3, EaseFactor: floatPtr(1.3), TotalRepeats: 6}

	_, m, err := c.SM5(in, Review{Quality: QualityBlackout}, NewMatrix())
	require.NoError(t, err)
	assert.Equal(t, MinOptimalFactor, m.OptimalFactor(3, 1.3, 0))
}

func TestSM5RoundsStoredFactor(t *testing.T) {
	c := newTestCalculator(t, func(cfg *Config) { cfg.LearnFraction = 0.25 })
	in := State{LastInterval: 5, Repetitions: 2, EaseFactor: floatPtr(2.5), TotalRepeats: 2}

	_, m, err := c.SM5(in, Review{Quality: QualityCorrectDifficult}, NewMatrix())
	require.NoError(t, err)
	// of = 2.5; new of = 0.75*2.5 + 0.25*2.5*0.93 = 2.45625 -> 2.456 (stored under ef 2.36)
	of, ok := m.Lookup(2, 2.36)
	require.True(t, ok)
	assert.Equal(t, 2.456, of)
}

func TestSM5EarlyReviewAdjustsOptimalFactor(t *testing.T) {
	var gotOF, gotInterval, gotEarly float64
	adjust := func(of, interval, early float64) float64 {
		gotOF, gotInterval, gotEarly = of, interval, early
		return 1.5
	}
	c := newTestCalculator(t, func(cfg *Config) { cfg.AdjustForEarlyLate = true }, WithEarlyAdjustment(adjust))
	in := State{LastInterval: 10, Repetitions: 3, EaseFactor: floatPtr(2.5), TotalRepeats: 3}

	got, m, err := c.SM5(in, Review{Quality: QualityCorrectHesitation, DeltaDays: -3}, NewMatrix())
	require.NoError(t, err)
	assert.Equal(t, 2.5, gotOF)
	assert.Equal(t, 25.0, gotInterval)
	assert.Equal(t, 3.0, gotEarly)
	assert.Equal(t, 1.5, m.OptimalFactor(3, 2.5, 0))
	assert.InDelta(t, 15.0, got.LastInterval, tolerance)
}

func TestSM5EarlyAdjustmentFloorAndGuard(t *testing.T) {
	calls := 0
	adjust := func(of, interval, early float64) float64 {
		calls++
		return 0.9
	}
	c := newTestCalculator(t, func(cfg *Config) { cfg.AdjustForEarlyLate = true }, WithEarlyAdjustment(adjust))

	_, m, err := c.SM5(State{LastInterval: 8, Repetitions: 2, TotalRepeats: 2}, Review{Quality: QualityPerfect, DeltaDays: -2}, NewMatrix())
	require.NoError(t, err)
	assert.Equal(t, MinOptimalFactor, m.OptimalFactor(2, 2.6, 0))
	assert.Equal(t, 1, calls)

	// No previous interval to scale: the adjustment is skipped.
	_, _, err = c.SM5(State{LastInterval: FailedInterval, Repetitions: 1, TotalRepeats: 2}, Review{Quality: QualityPerfect, DeltaDays: -2}, NewMatrix())
	require.NoError(t, err)
	// Late reviews never adjust SM5.
	_, _, err = c.SM5(State{LastInterval: 8, Repetitions: 2, TotalRepeats: 2}, Review{Quality: QualityPerfect, DeltaDays: 4}, NewMatrix())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestSM5NoiseBlendsInterval(t *testing.T) {
	c := newTestCalculator(t, func(cfg *Config) { cfg.AddRandomNoise = true }, fixedDispersal(0.5))
	in := State{LastInterval: 10, Repetitions: 3, EaseFactor: floatPtr(2.5), TotalRepeats: 3}

	got, _, err := c.SM5(in, Review{Quality: QualityCorrectHesitation}, NewMatrix())
	require.NoError(t, err)
	// interval = 2.5 * 10 = 25, blended: 10 + 15*0.5
	assert.InDelta(t, 17.5, got.LastInterval, tolerance)
}

func TestSM5RejectsInvalidQuality(t *testing.T) {
	c := newTestCalculator(t, nil)
	m := NewMatrix(MatrixEntry{Repetition: 1, EaseFactor: 2.5, OptimalFactor: 4})

	_, out, err := c.SM5(NewState(), Review{Quality: 9}, m)
	assert.True(t, errors.Is(err, ErrInvalidQuality))
	assert.True(t, out.Equal(m))
}
