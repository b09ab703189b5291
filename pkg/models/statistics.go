package models

// DeckStatistics summarises the items of one deck
type DeckStatistics struct {
	Deck         string `json:"deck" db:"deck"`
	Items        int    `json:"items" db:"items"`
	Due          int    `json:"due" db:"due"`
	Unseen       int    `json:"unseen" db:"unseen"`
	TotalRepeats int    `json:"total_repeats" db:"total_repeats"`
}
