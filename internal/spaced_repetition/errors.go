package spaced_repetition

import "errors"

// Sentinel errors for the spaced_repetition package.
// Use errors.Is to check: errors.Is(err, spaced_repetition.ErrInvalidQuality)
var (
	ErrInvalidQuality     = errors.New("spaced_repetition: quality out of range [0, 5]")
	ErrInvalidRepetitions = errors.New("spaced_repetition: negative repetition count")
	ErrInvalidMeanQuality = errors.New("spaced_repetition: mean quality out of range [0, 5]")
	ErrInvalidConfig      = errors.New("spaced_repetition: invalid configuration")
	ErrInvalidAlgorithm   = errors.New("spaced_repetition: unknown algorithm")
)
