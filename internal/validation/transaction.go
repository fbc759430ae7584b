package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
)

// NormalizeTransactionType upper-cases and trims a requested type.
func NormalizeTransactionType(t string) model.TransactionType {
	return model.TransactionType(strings.ToUpper(strings.TrimSpace(t)))
}

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - type: BUY or SELL (case-insensitive)
//   - amountUSD: Must be positive
//   - rate: Must be positive
//
// Optional fields:
//   - date: RFC3339 or YYYY-MM-DD
//
// Inventory is not checked here; that needs the portfolio snapshot.
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !NormalizeTransactionType(req.Type).Valid() {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if !(req.AmountUSD > 0) {
		errors["amountUSD"] = "amountUSD must be positive"
	}

	if !(req.Rate > 0) {
		errors["rate"] = "rate must be positive"
	}

	if strings.TrimSpace(req.Date) != "" {
		if _, err := ParseTime(req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateRecord checks a transaction received from outside this service
// before it is stored: a valid ID, a known type, and a positive amount and rate.
func ValidateRecord(tx model.Transaction) error {
	if err := ValidateID(tx.ID); err != nil {
		return err
	}

	errors := make(map[string]string)
	if !tx.Type.Valid() {
		errors["type"] = fmt.Sprintf("invalid type: %s", tx.Type)
	}
	if !(tx.AmountUSD > 0) {
		errors["amountUSD"] = "amountUSD must be positive"
	}
	if !(tx.Rate > 0) {
		errors["rate"] = "rate must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
