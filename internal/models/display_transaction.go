package models

// DisplayTransaction is a transaction with its amount and date rendered for the user
type DisplayTransaction struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   string          `json:"amount"`
	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
}
