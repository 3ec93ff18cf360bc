package validation

import (
	"fmt"
	"strings"

	"github.com/Rahul-Chotaliya/tradehub/internal/api/request"
	"github.com/Rahul-Chotaliya/tradehub/internal/costbasis"
	"github.com/Rahul-Chotaliya/tradehub/internal/model"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	string(model.SideBuy): true, string(model.SideSell): true,
}

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - amount: Must be positive, at most 50 digits with 10 decimal places
//   - transaction_type: Must be one of: buy, sell
//
// Optional fields (validated if provided):
//   - cost: Must not be negative, at most 100 digits with 2 decimal places
//   - date: YYYY-MM-DD or RFC3339
//
// Returns a validation Error with field-specific error messages if validation fails.
// Holdings are not checked here; that needs the ledger.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if !req.Amount.Valid {
		errors["amount"] = "amount is required"
	} else if !req.Amount.Decimal.IsPositive() {
		errors["amount"] = "amount must be positive"
	} else if !costbasis.FitsDigits(req.Amount.Decimal, costbasis.AmountMaxDigits, costbasis.AmountDecimalPlaces) {
		errors["amount"] = fmt.Sprintf("amount allows at most %d digits with %d decimal places",
			costbasis.AmountMaxDigits, costbasis.AmountDecimalPlaces)
	}

	if req.Cost.Valid {
		switch {
		case req.Cost.Decimal.IsNegative():
			errors["cost"] = "cost cannot be negative"
		case !costbasis.FitsDigits(req.Cost.Decimal, costbasis.CostMaxDigits, costbasis.CostDecimalPlaces):
			errors["cost"] = fmt.Sprintf("cost allows at most %d digits with %d decimal places",
				costbasis.CostMaxDigits, costbasis.CostDecimalPlaces)
		}
	}

	txType := strings.ToLower(strings.TrimSpace(req.TransactionType))
	if txType == "" {
		errors["transaction_type"] = "transaction_type is required"
	} else if !ValidTransactionType[txType] {
		errors["transaction_type"] = fmt.Sprintf("invalid type: %s", req.TransactionType)
	}

	if strings.TrimSpace(req.Date) != "" {
		if _, err := ParseTime(req.Date); err != nil {
			errors["date"] = "date must be YYYY-MM-DD or RFC3339"
		}
	}

	return newError(errors)
}
