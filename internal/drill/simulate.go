package drill

import (
	"math/rand"

	sr "github.com/example/drillbot/internal/spaced_repetition"
	"github.com/samber/lo"
)

// Learner is an item held in memory, as used by simulations.
type Learner struct {
	Name  string
	State sr.State
}

// NewLearner returns a learner that was never reviewed.
func NewLearner(name string) *Learner {
	return &Learner{Name: name, State: sr.NewState()}
}

// Learn applies a review graded q on time and returns the matrix to use for
// the next review.
func (l *Learner) Learn(calc *sr.Calculator, alg sr.Algorithm, q sr.QualityResponse, m sr.Matrix) (sr.Matrix, error) {
	next, m, err := calc.Next(alg, l.State, sr.Review{Quality: q}, m)
	if err != nil {
		return m, err
	}
	l.State = next
	return m, nil
}

// Step is one simulated review.
type Step struct {
	Name    string
	Quality sr.QualityResponse
	State   sr.State
}

// Simulation drills a deck of learners with synthetic grades. Recently seen
// items are answered perfectly, items seen just before that are answered
// correctly and everything else gets a random grade.
type Simulation struct {
	Calc      *sr.Calculator
	Algorithm sr.Algorithm
	Rand      *rand.Rand
	Matrix    sr.Matrix
}

// Run first fails every name once, then performs steps reviews, always
// picking among the items with the shortest interval.
func (sim *Simulation) Run(names []string, steps int) ([]Step, error) {
	names = lo.Uniq(names)
	deck := make(map[string]*Learner, len(names))
	for _, name := range names {
		l := NewLearner(name)
		m, err := l.Learn(sim.Calc, sim.Algorithm, sr.QualityBlackout, sim.Matrix)
		if err != nil {
			return nil, err
		}
		sim.Matrix = m
		deck[name] = l
	}

	var (
		recent, boring []string
		out            = make([]Step, 0, steps)
		failure        = int(sim.Calc.Config().FailureQuality)
	)
	for i := 0; i < steps && len(names) > 0; i++ {
		choices := names
		if len(recent) > 0 && len(names) > 1 {
			last := recent[len(recent)-1]
			choices = lo.Without(names, last)
		}
		shortest := lo.MinBy(choices, func(a, b string) bool {
			return deck[a].State.LastInterval < deck[b].State.LastInterval
		})
		candidates := lo.Filter(choices, func(name string, _ int) bool {
			return deck[name].State.LastInterval == deck[shortest].State.LastInterval
		})
		name := candidates[sim.Rand.Intn(len(candidates))]

		var q sr.QualityResponse
		switch {
		case lo.Contains(recent, name):
			q = sr.QualityPerfect
		case lo.Contains(boring, name):
			q = sr.QualityResponse(failure + 1 + sim.Rand.Intn(int(sr.QualityPerfect)-failure))
		default:
			q = sr.QualityResponse(sim.Rand.Intn(int(sr.QualityPerfect) + 1))
		}

		m, err := deck[name].Learn(sim.Calc, sim.Algorithm, q, sim.Matrix)
		if err != nil {
			return out, err
		}
		sim.Matrix = m
		out = append(out, Step{Name: name, Quality: q, State: deck[name].State})

		boring = lo.Without(boring, name)
		if len(recent) > 0 {
			if lo.Contains(recent, name) {
				recent = lo.Without(recent, name)
			} else {
				boring = pushBounded(boring, recent[len(recent)-1], 2)
				recent = recent[:len(recent)-1]
			}
		}
		recent = pushBounded(recent, name, 2)
	}
	return out, nil
}

func pushBounded(s []string, v string, max int) []string {
	s = append(s, v)
	if len(s) > max {
		s = s[len(s)-max:]
	}
	return s
}
