package services

import (
	"fmt"
	"strings"
	"time"

	"gofinances/internal/models"

	"github.com/shopspring/decimal"
)

const (
	DefaultCurrencySymbol = "R$"
	shortDateLayout       = "02/01/06"
)

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// TransactionFormatter renders amounts and dates the pt-BR way. It holds no mutable state.
type TransactionFormatter struct {
	currencySymbol string
	location       *time.Location
}

// NewTransactionFormatter creates a formatter. Dates are shown in location, UTC when nil.
func NewTransactionFormatter(currencySymbol string, location *time.Location) *TransactionFormatter {
	if currencySymbol == "" {
		currencySymbol = DefaultCurrencySymbol
	}
	if location == nil {
		location = time.UTC
	}
	return &TransactionFormatter{
		currencySymbol: currencySymbol,
		location:       location,
	}
}

// Format converts a stored transaction into its display form
func (f *TransactionFormatter) Format(transaction models.Transaction) models.DisplayTransaction {
	return models.DisplayTransaction{
		ID:       transaction.ID,
		Name:     transaction.Name,
		Amount:   f.FormatAmount(transaction.Amount),
		Type:     transaction.Type,
		Category: transaction.Category,
		Date:     f.FormatShortDate(transaction.Date),
	}
}

// FormatAmount renders a magnitude, e.g. "R$ 12.000,00". The sign is never shown.
func (f *TransactionFormatter) FormatAmount(amount decimal.Decimal) string {
	return f.currencySymbol + " " + groupDigits(amount.Abs())
}

// FormatCurrency renders a signed value, e.g. "-R$ 70,00"
func (f *TransactionFormatter) FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	if rounded.IsNegative() {
		return "-" + f.FormatAmount(rounded)
	}
	return f.FormatAmount(rounded)
}

// FormatShortDate renders dd/mm/yy
func (f *TransactionFormatter) FormatShortDate(date time.Time) string {
	return date.In(f.location).Format(shortDateLayout)
}

// FormatDayMonth renders "<day> de <month>", e.g. "13 de abril"
func (f *TransactionFormatter) FormatDayMonth(date time.Time) string {
	local := date.In(f.location)
	return fmt.Sprintf("%d de %s", local.Day(), monthNames[local.Month()-1])
}

// groupDigits writes a non-negative amount with "." thousands and "," decimals
func groupDigits(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	integer, fraction, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, digit := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	b.WriteByte(',')
	b.WriteString(fraction)

	return b.String()
}
