package spaced_repetition

import "math"

const (
	// MinEaseFactor is the floor for SM2/SM5 ease factors.
	MinEaseFactor = 1.3
	// MinOptimalFactor is the floor for SM5 optimal factors.
	MinOptimalFactor = 1.2
)

// ModifyEaseFactor adapts an ease factor to a recall grade.
// EF' = max(1.3, EF + 0.1 - (5-q)*(0.08+(5-q)*0.02))
func ModifyEaseFactor(ef float64, quality QualityResponse) float64 {
	d := 5.0 - float64(quality)
	return math.Max(MinEaseFactor, ef+(0.1-d*(0.08+d*0.02)))
}

// Simple8QualityToEase maps a mean quality onto the Simple8 ease curve.
func Simple8QualityToEase(meanQuality float64) float64 {
	q := meanQuality
	return 0.0542*q*q*q*q - 0.4848*q*q*q + 1.4916*q*q - 1.2403*q + 1.4515
}

// modifyOptimalFactor moves of towards of*(0.72+0.07q), blended by fraction.
func modifyOptimalFactor(of float64, quality QualityResponse, fraction float64) float64 {
	target := of * (0.72 + 0.07*float64(quality))
	return math.Max(MinOptimalFactor, (1-fraction)*of+fraction*target)
}

// roundTo rounds x to the given number of decimal places.
func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
