package spaced_repetition

import (
	"math"
)

// SM5 applies the SuperMemo-5 algorithm to s using the optimal-factor matrix m.
//
// m is never modified. The returned matrix holds the cell (n, next EF)
// updated from this review and must replace the caller's canonical matrix,
// including after a failure.
func (c *Calculator) SM5(s State, r Review, m Matrix) (State, Matrix, error) {
	if err := checkReview(s, r); err != nil {
		return State{}, m, err
	}
	next := s.clone()
	n := next.Repetitions
	if n == 0 {
		n = 1
	}
	ef := next.Ease()
	next.setMeanQuality(updatedMeanQuality(s, r.Quality))
	next.TotalRepeats++

	nextEF := ModifyEaseFactor(ef, r.Quality)
	of := c.OptimalFactor(m, n, ef)
	newOF := modifyOptimalFactor(of, r.Quality, c.cfg.LearnFraction)

	if c.cfg.AdjustForEarlyLate && r.DeltaDays < 0 && s.LastInterval > 0 {
		newOF = math.Max(MinOptimalFactor, c.earlyAdj(of, sm5Interval(s.LastInterval, n, of), -r.DeltaDays))
	}
	updated := m.With(n, nextEF, roundTo(newOF, 3))

	if c.cfg.IsFailure(r.Quality) {
		next.LastInterval = FailedInterval
		next.Repetitions = 1
		next.setEaseFactor(ef)
		next.Failures++
		return next, updated, nil
	}

	interval := sm5Interval(s.LastInterval, n, c.OptimalFactor(updated, n, nextEF))
	next.LastInterval = c.blend(s.LastInterval, interval)
	next.Repetitions = n + 1
	next.setEaseFactor(nextEF)
	return next, updated, nil
}

// sm5Interval: the first repetition's interval is the optimal factor itself,
// later ones scale the previous interval.
func sm5Interval(last float64, n int, of float64) float64 {
	if n == 1 {
		return of
	}
	return of * last
}
