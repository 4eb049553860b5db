package dto

import "gofinances/internal/models"

// DashboardResponse is everything the listing screen renders, from a single ledger load
type DashboardResponse struct {
	User         UserProfileResponse    `json:"user"`
	Highlights   models.HighlightData   `json:"highlights"`
	Transactions []TransactionResponse  `json:"transactions"`
	Skipped      []models.SkippedRecord `json:"skipped,omitempty"`
}

// CategoriesResponse lists the category catalog
type CategoriesResponse struct {
	Categories []models.Category `json:"categories"`
}
