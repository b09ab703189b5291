package models

import (
	"time"

	sr "github.com/example/drillbot/internal/spaced_repetition"
)

// Item is a question/answer card together with its scheduling state
type Item struct {
	ID       int64  `json:"id" db:"id"`
	Deck     string `json:"deck" db:"deck"`
	Question string `json:"question" db:"question"`
	Answer   string `json:"answer" db:"answer"`

	LastInterval float64  `json:"last_interval" db:"last_interval"` // days, -1 when due immediately
	Repetitions  int      `json:"repetitions" db:"repetitions"`
	EaseFactor   *float64 `json:"ease_factor" db:"ease_factor"`
	Failures     int      `json:"failures" db:"failures"`
	MeanQuality  *float64 `json:"mean_quality" db:"mean_quality"`
	TotalRepeats int      `json:"total_repeats" db:"total_repeats"`
	LastQuality  *int     `json:"last_quality" db:"last_quality"`

	DueAt          *time.Time `json:"due_at" db:"due_at"` // nil for items never scheduled
	LastReviewedAt *time.Time `json:"last_reviewed_at" db:"last_reviewed_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// NewItem returns an unscheduled item.
func NewItem(deck, question, answer string) *Item {
	return &Item{
		Deck:         deck,
		Question:     question,
		Answer:       answer,
		LastInterval: sr.FailedInterval,
	}
}

// State extracts the scheduling state.
func (i *Item) State() sr.State {
	return sr.State{
		LastInterval: i.LastInterval,
		Repetitions:  i.Repetitions,
		EaseFactor:   i.EaseFactor,
		Failures:     i.Failures,
		MeanQuality:  i.MeanQuality,
		TotalRepeats: i.TotalRepeats,
	}
}

// ApplyState copies s into the item's scheduling columns.
func (i *Item) ApplyState(s sr.State) {
	i.LastInterval = s.LastInterval
	i.Repetitions = s.Repetitions
	i.EaseFactor = s.EaseFactor
	i.Failures = s.Failures
	i.MeanQuality = s.MeanQuality
	i.TotalRepeats = s.TotalRepeats
}
