package spaced_repetition

import (
	"fmt"
	"time"
)

// Maturity is the lifecycle stage of an item.
type Maturity int

const (
	MaturityNew   Maturity = iota + 1 // Never reviewed.
	MaturityYoung                     // Interval up to DaysBeforeOld.
	MaturityOld                       // Interval beyond DaysBeforeOld.
)

var maturityNames = [...]string{MaturityNew: "new", MaturityYoung: "young", MaturityOld: "old"}

func (m Maturity) String() string {
	if m >= MaturityNew && m <= MaturityOld {
		return maturityNames[m]
	}
	return fmt.Sprintf("Maturity(%d)", int(m))
}

// Classification is the result of classifying one item at a point in time.
// Maturity is exclusive; the boolean flags are independent of it.
type Classification struct {
	Maturity    Maturity
	Due         bool // scheduled for today or earlier, or never scheduled
	DaysOverdue int  // calendar days past the due date, 0 when not due
	Overdue     bool // late by more than the overdue allowance
	Failed      bool // the last review was a failure
	Leech       bool
}

// Classify places an item in its lifecycle stage. due is nil for items that
// were never scheduled.
func (c Config) Classify(s State, due *time.Time, now time.Time) Classification {
	out := Classification{
		Maturity: c.maturity(s),
		Failed:   s.TotalRepeats > 0 && s.LastInterval < 0,
		Leech:    c.IsLeech(s),
	}
	if due == nil {
		out.Due = true
		return out
	}
	past := DaysBetween(*due, now)
	if past < 0 {
		return out
	}
	out.Due = true
	out.DaysOverdue = past
	// An item is overdue once the lateness exceeds the share of its interval
	// allowed by OverdueIntervalFactor.
	if s.LastInterval > 0 && float64(past) > s.LastInterval*(c.OverdueIntervalFactor-1) {
		out.Overdue = true
	}
	return out
}

func (c Config) maturity(s State) Maturity {
	switch {
	case s.TotalRepeats == 0:
		return MaturityNew
	case s.LastInterval <= float64(c.DaysBeforeOld):
		return MaturityYoung
	default:
		return MaturityOld
	}
}

// IsLeech reports whether the item has failed more often than the leech
// threshold allows. A zero threshold disables leech detection.
func (c Config) IsLeech(s State) bool {
	return c.LeechFailureThreshold > 0 && s.Failures > c.LeechFailureThreshold
}

// DaysBetween counts UTC calendar days from from to to; negative when to is earlier.
func DaysBetween(from, to time.Time) int {
	return int(midnight(to).Sub(midnight(from)).Hours() / 24)
}

// EndOfDay is the first instant of the UTC day after t. Everything due
// before it counts as due on t.
func EndOfDay(t time.Time) time.Time {
	return midnight(t).AddDate(0, 0, 1)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
