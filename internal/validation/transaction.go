package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gofinances/internal/dto"
	"gofinances/internal/models"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries one message per rejected field, keyed by its JSON name
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field, message := range e.Fields {
		fields = append(fields, fmt.Sprintf("%s %s", field, message))
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, "; ")
}

// ValidateNewTransaction checks the registration form and returns typed input ready for the ledger
func ValidateNewTransaction(req dto.CreateTransactionRequest) (models.NewTransaction, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	req.Amount = dto.AmountInput(strings.TrimSpace(string(req.Amount)))

	if err := GetValidator().GetValidate().Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return models.NewTransaction{}, fmt.Errorf("failed to validate transaction: %w", err)
		}

		validationErr := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
		for _, fieldErr := range fieldErrs {
			validationErr.Fields[fieldErr.Field()] = FieldMessage(fieldErr)
		}
		return models.NewTransaction{}, validationErr
	}

	amount, err := ParseAmount(string(req.Amount))
	if err != nil {
		return models.NewTransaction{}, &ValidationError{Fields: map[string]string{"amount": err.Error()}}
	}

	transactionType, err := models.ParseTransactionType(req.Type)
	if err != nil {
		return models.NewTransaction{}, &ValidationError{Fields: map[string]string{"type": err.Error()}}
	}

	return models.NewTransaction{
		Name:     req.Name,
		Amount:   amount,
		Type:     transactionType,
		Category: req.Category,
	}, nil
}
