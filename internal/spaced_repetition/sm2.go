package spaced_repetition

// SM2 applies the SuperMemo-2 algorithm to s.
//
// A failure (quality <= Config.FailureQuality) schedules the item for
// immediate review and restarts the repetition count without touching the
// ease factor. A success grows the interval: 1 day, then 6 days, then the
// previous interval times the new ease factor.
func (c *Calculator) SM2(s State, r Review) (State, error) {
	if err := checkReview(s, r); err != nil {
		return State{}, err
	}
	next := s.clone()
	if next.Repetitions == 0 {
		next.Repetitions = 1
	}
	ef := next.Ease()
	next.setMeanQuality(updatedMeanQuality(s, r.Quality))
	next.TotalRepeats++

	if c.cfg.IsFailure(r.Quality) {
		next.LastInterval = FailedInterval
		next.Repetitions = 1
		next.setEaseFactor(ef)
		next.Failures++
		return next, nil
	}

	nextEF := ModifyEaseFactor(ef, r.Quality)
	var interval float64
	switch {
	case next.Repetitions <= 1:
		interval = 1
	case next.Repetitions == 2:
		interval = c.secondInterval(r.Quality)
	default:
		interval = s.LastInterval * nextEF
	}

	next.LastInterval = c.blend(s.LastInterval, interval)
	next.Repetitions++
	next.setEaseFactor(nextEF)
	return next, nil
}

// secondInterval is the interval after the second successful repetition.
// With noise enabled it depends on the grade so that easy items spread out sooner.
func (c *Calculator) secondInterval(q QualityResponse) float64 {
	if !c.cfg.AddRandomNoise {
		return 6
	}
	switch q {
	case QualityPerfect:
		return 6
	case QualityCorrectHesitation:
		return 4
	case QualityCorrectDifficult:
		return 3
	case QualityIncorrectFamiliar:
		return 1
	default:
		return FailedInterval
	}
}
