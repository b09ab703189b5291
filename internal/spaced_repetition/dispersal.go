package spaced_repetition

import (
	"math"
	"math/rand"
)

// Dispersal parameters of the SuperMemo random dispersal curve.
const (
	dispersalA = 0.047
	dispersalB = 0.092
)

// DispersalFunc returns a multiplier close to 1.0 used to spread due dates.
type DispersalFunc func() float64

// EarlyAdjustFunc returns the factor to use in place of optimalFactor for an
// item reviewed daysEarly days before it was due. interval is the interval
// the item would have received had it been reviewed on time.
type EarlyAdjustFunc func(optimalFactor, interval, daysEarly float64) float64

// RandomDispersal returns the default dispersal policy backed by rng.
// p is uniform on [-0.5, 0.5); the result is 1 + sign(p)*(-1/b)*ln(1-(b/a)|p|)/100,
// which stays within roughly [0.58, 1.42] and clusters around 1.0.
func RandomDispersal(rng *rand.Rand) DispersalFunc {
	return func() float64 {
		return dispersalFactor(rng.Float64() - 0.5)
	}
}

func dispersalFactor(p float64) float64 {
	spread := (-1 / dispersalB) * math.Log(1-(dispersalB/dispersalA)*math.Abs(p))
	if p < 0 {
		spread = -spread
	}
	return (100 + spread) / 100
}

// NoDispersal always returns 1.
func NoDispersal() float64 { return 1 }

// EarlyIntervalFactor is the default early-review correction.
//
//	Δmax = (of-1) * (I + 0.6I - 1) / (I - 1)
//	of'  = of - Δmax * early / (early + 0.6I)
//
// The factor is returned unchanged when the curve is undefined (I <= 1) or the
// review was not early.
func EarlyIntervalFactor(optimalFactor, interval, daysEarly float64) float64 {
	if interval <= 1 || daysEarly <= 0 {
		return optimalFactor
	}
	deltaMax := (optimalFactor - 1) * ((interval + 0.6*interval - 1) / (interval - 1))
	return optimalFactor - deltaMax*(daysEarly/(daysEarly+0.6*interval))
}
