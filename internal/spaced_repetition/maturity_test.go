package spaced_repetition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func daysAgo(d int) *time.Time {
	t := now.AddDate(0, 0, -d)
	return &t
}

func TestClassify(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		state State
		due   *time.Time
		want  Classification
	}{
		{
			name:  "never reviewed",
			state: NewState(),
			want:  Classification{Maturity: MaturityNew, Due: true},
		},
		{
			name:  "young due today",
			state: State{LastInterval: 8, Repetitions: 3, TotalRepeats: 3},
			due:   daysAgo(0),
			want:  Classification{Maturity: MaturityYoung, Due: true},
		},
		{
			name:  "young within overdue allowance",
			state: State{LastInterval: 8, Repetitions: 3, TotalRepeats: 3},
			due:   daysAgo(1),
			want:  Classification{Maturity: MaturityYoung, Due: true, DaysOverdue: 1},
		},
		{
			name:  "young overdue",
			state: State{LastInterval: 8, Repetitions: 3, TotalRepeats: 3},
			due:   daysAgo(3),
			want:  Classification{Maturity: MaturityYoung, Due: true, DaysOverdue: 3, Overdue: true},
		},
		{
			name:  "boundary interval is still young",
			state: State{LastInterval: 10, Repetitions: 4, TotalRepeats: 4},
			due:   daysAgo(0),
			want:  Classification{Maturity: MaturityYoung, Due: true},
		},
		{
			name:  "old not yet due",
			state: State{LastInterval: 30, Repetitions: 6, TotalRepeats: 8},
			due:   daysAgo(-3),
			want:  Classification{Maturity: MaturityOld},
		},
		{
			name:  "failed last time",
			state: State{LastInterval: FailedInterval, Repetitions: 1, Failures: 1, TotalRepeats: 4},
			due:   daysAgo(3),
			want:  Classification{Maturity: MaturityYoung, Due: true, DaysOverdue: 3, Failed: true},
		},
		{
			name:  "leech",
			state: State{LastInterval: 2, Repetitions: 2, Failures: 16, TotalRepeats: 30},
			due:   daysAgo(-1),
			want:  Classification{Maturity: MaturityYoung, Leech: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Classify(tt.state, tt.due, now))
		})
	}
}

func TestIsLeech(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.IsLeech(State{Failures: 15}))
	assert.True(t, cfg.IsLeech(State{Failures: 16}))

	cfg.LeechFailureThreshold = 0
	assert.False(t, cfg.IsLeech(State{Failures: 100}))
}

func TestDaysBetween(t *testing.T) {
	late := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
	early := time.Date(2025, 6, 15, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysBetween(early, late))
	assert.Equal(t, 1, DaysBetween(late, early.AddDate(0, 0, 1)))
	assert.Equal(t, -3, DaysBetween(now, now.AddDate(0, 0, -3)))

	// 23:00 UTC on the due date, written in a zone already past midnight.
	due := time.Date(2026, 10, 15, 23, 30, 0, 0, time.UTC)
	local := time.Date(2026, 10, 16, 1, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	assert.Equal(t, 0, DaysBetween(due, local))
	assert.Equal(t, 0, DaysBetween(local, due))
}

func TestEndOfDay(t *testing.T) {
	want := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, EndOfDay(now))
	west := time.Date(2025, 6, 15, 20, 0, 0, 0, time.FixedZone("EDT", -4*60*60))
	assert.Equal(t, want, EndOfDay(west))
}

func TestClassifyNotDueAcrossZones(t *testing.T) {
	cfg := DefaultConfig()
	due := time.Date(2026, 10, 16, 0, 30, 0, 0, time.UTC)
	local := time.Date(2026, 10, 16, 1, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	got := cfg.Classify(State{LastInterval: 6, Repetitions: 3, TotalRepeats: 3}, &due, local)
	assert.False(t, got.Due)
}

func TestMaturityString(t *testing.T) {
	assert.Equal(t, "new", MaturityNew.String())
	assert.Equal(t, "old", MaturityOld.String())
	assert.Equal(t, "Maturity(9)", Maturity(9).String())
}
