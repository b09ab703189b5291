package spaced_repetition

import (
	"fmt"
	"math/rand"
	"time"
)

// Calculator computes next intervals with the SM2, SM5 and Simple8 algorithms.
//
// Calculations are pure apart from the dispersal draw. The default dispersal
// reads from a private *rand.Rand, so a Calculator must not be shared between
// goroutines without external locking.
type Calculator struct {
	cfg      Config
	disperse DispersalFunc
	earlyAdj EarlyAdjustFunc
}

// Option customises a Calculator.
type Option func(*Calculator)

// WithRand seeds the default dispersal policy from rng.
func WithRand(rng *rand.Rand) Option {
	return func(c *Calculator) { c.disperse = RandomDispersal(rng) }
}

// WithDispersal replaces the dispersal policy.
func WithDispersal(f DispersalFunc) Option {
	return func(c *Calculator) { c.disperse = f }
}

// WithEarlyAdjustment replaces the early-review correction curve.
func WithEarlyAdjustment(f EarlyAdjustFunc) Option {
	return func(c *Calculator) { c.earlyAdj = f }
}

// NewCalculator validates cfg and returns a Calculator.
func NewCalculator(cfg Config, opts ...Option) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Calculator{
		cfg:      cfg,
		disperse: RandomDispersal(rand.New(rand.NewSource(time.Now().UnixNano()))),
		earlyAdj: EarlyIntervalFactor,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the configuration the calculator was built with.
func (c *Calculator) Config() Config {
	return c.cfg
}

// Next dispatches to the calculator selected by alg. m is only read and
// returned by SM5; the other algorithms hand it back unchanged.
func (c *Calculator) Next(alg Algorithm, s State, r Review, m Matrix) (State, Matrix, error) {
	switch alg {
	case SM2:
		next, err := c.SM2(s, r)
		return next, m, err
	case SM5:
		return c.SM5(s, r, m)
	case Simple8:
		next, err := c.Simple8(s, r)
		return next, m, err
	default:
		return State{}, m, fmt.Errorf("%w: %d", ErrInvalidAlgorithm, int(alg))
	}
}

// OptimalFactor looks up (n, ef) in m using the configured initial interval.
func (c *Calculator) OptimalFactor(m Matrix, n int, ef float64) float64 {
	return m.OptimalFactor(n, ef, c.cfg.SM5InitialInterval)
}

// blend moves from last towards interval by a dispersal draw when noise is on.
func (c *Calculator) blend(last, interval float64) float64 {
	if !c.cfg.AddRandomNoise {
		return interval
	}
	return last + (interval-last)*c.disperse()
}
