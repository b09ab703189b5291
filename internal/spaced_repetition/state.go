package spaced_repetition

import "fmt"

// DefaultEaseFactor is used when an item has no ease factor yet.
const DefaultEaseFactor = 2.5

// FailedInterval is the interval returned after a failed review: show the item again now.
const FailedInterval = -1.0

// State is the per-item scheduling record. It is a value: calculators never
// mutate their input and always return a complete replacement.
type State struct {
	LastInterval float64  `json:"last_interval"` // days; -1 means due immediately
	Repetitions  int      `json:"repetitions"`   // successful reviews since the last failure
	EaseFactor   *float64 `json:"ease_factor"`   // nil before the first SM2/SM5 review
	Failures     int      `json:"failures"`      // never reset
	MeanQuality  *float64 `json:"mean_quality"`  // nil before the first review
	TotalRepeats int      `json:"total_repeats"`
}

// NewState returns the state of an item that has never been reviewed. SM2 and
// SM5 treat its zero repetition count as 1.
func NewState() State {
	return State{LastInterval: FailedInterval}
}

// Review is a single recall event fed to a calculator.
type Review struct {
	Quality QualityResponse
	// DeltaDays is the offset between the actual and the scheduled review
	// date: negative when early, positive when late, zero when on time.
	DeltaDays float64
}

// Ease returns the ease factor, or DefaultEaseFactor when unset.
func (s State) Ease() float64 {
	if s.EaseFactor == nil {
		return DefaultEaseFactor
	}
	return *s.EaseFactor
}

// clone returns a deep copy. Pointer fields are copied by value.
func (s State) clone() State {
	out := s
	if s.EaseFactor != nil {
		v := *s.EaseFactor
		out.EaseFactor = &v
	}
	if s.MeanQuality != nil {
		v := *s.MeanQuality
		out.MeanQuality = &v
	}
	return out
}

func (s *State) setEaseFactor(ef float64) {
	s.EaseFactor = &ef
}

func (s *State) setMeanQuality(mq float64) {
	s.MeanQuality = &mq
}

// updatedMeanQuality folds q into the running mean using the pre-increment total.
func updatedMeanQuality(s State, q QualityResponse) float64 {
	if s.MeanQuality == nil {
		return float64(q)
	}
	return (float64(q) + *s.MeanQuality*float64(s.TotalRepeats)) / float64(s.TotalRepeats+1)
}

func checkReview(s State, r Review) error {
	if !r.Quality.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidQuality, int(r.Quality))
	}
	if s.Repetitions < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRepetitions, s.Repetitions)
	}
	if s.MeanQuality != nil && (*s.MeanQuality < 0 || *s.MeanQuality > 5) {
		return fmt.Errorf("%w: %f", ErrInvalidMeanQuality, *s.MeanQuality)
	}
	return nil
}
