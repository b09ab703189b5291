package models

import "time"

// ReviewLog records one graded review of an item
type ReviewLog struct {
	ID             int64     `json:"id" db:"id"`
	ItemID         int64     `json:"item_id" db:"item_id"`
	Algorithm      string    `json:"algorithm" db:"algorithm"`
	Quality        int       `json:"quality" db:"quality"`
	DeltaDays      float64   `json:"delta_days" db:"delta_days"` // negative when reviewed early
	IntervalBefore float64   `json:"interval_before" db:"interval_before"`
	IntervalAfter  float64   `json:"interval_after" db:"interval_after"`
	EaseFactor     *float64  `json:"ease_factor" db:"ease_factor"`
	ReviewedAt     time.Time `json:"reviewed_at" db:"reviewed_at"`
}
