package spaced_repetition

import "math"

// Simple8FirstInterval is the interval after the first successful repetition,
// shortened for items that have failed before.
func Simple8FirstInterval(failures int) float64 {
	return 2.4849 * math.Exp(-0.057*float64(failures))
}

// simple8IntervalFactor decays from ease towards 1.2 as repetitions accumulate.
func simple8IntervalFactor(ease, repetition, learnFraction float64) float64 {
	return 1.2 + (ease-1.2)*math.Pow(learnFraction, math.Log2(repetition))
}

// Simple8 applies the simplified SuperMemo-8 algorithm to s. The ease is not
// stored state: it is derived from the running mean quality on every call and
// reported back in EaseFactor.
//
// Failures count towards TotalRepeats like any other review. A state without
// a positive interval, such as one failed under SM2 or SM5, gets the
// first-repetition interval.
func (c *Calculator) Simple8(s State, r Review) (State, error) {
	if err := checkReview(s, r); err != nil {
		return State{}, err
	}
	next := s.clone()
	mq := updatedMeanQuality(s, r.Quality)
	next.setMeanQuality(mq)
	next.TotalRepeats++

	var interval float64
	switch {
	case c.cfg.IsFailure(r.Quality):
		next.Failures++
		next.Repetitions = 0
		interval = FailedInterval
	case s.Repetitions == 0 || s.LastInterval <= 0:
		interval = Simple8FirstInterval(s.Failures)
		next.Repetitions++
	default:
		interval = c.simple8Interval(s, r, mq)
		next.Repetitions++
	}

	if c.cfg.AddRandomNoise && interval > 0 {
		interval *= c.disperse()
	}
	next.LastInterval = interval
	next.setEaseFactor(Simple8QualityToEase(mq))
	return next, nil
}

func (c *Calculator) simple8Interval(s State, r Review, mq float64) float64 {
	useN := float64(s.Repetitions)
	if c.cfg.AdjustForEarlyLate && r.DeltaDays > 0 && s.LastInterval > 0 {
		// A late review that still succeeded counts as up to one extra repetition.
		useN += math.Min(1, r.DeltaDays/s.LastInterval)
	}
	factor := simple8IntervalFactor(Simple8QualityToEase(mq), useN, c.cfg.LearnFraction)
	interval := s.LastInterval * factor
	if c.cfg.AdjustForEarlyLate && r.DeltaDays < 0 {
		factor = c.earlyAdj(factor, interval, -r.DeltaDays)
		interval = s.LastInterval * factor
	}
	return interval
}
