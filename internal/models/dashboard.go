package models

// Dashboard is everything the home screen shows for one user
type Dashboard struct {
	User         User                 `json:"user"`
	Highlights   HighlightData        `json:"highlights"`
	Transactions []DisplayTransaction `json:"transactions"`
	Skipped      []SkippedRecord      `json:"skipped,omitempty"`
}
