package request

import "github.com/shopspring/decimal"

// CreateTransactionRequest accepts amount and cost as JSON numbers or strings.
// Cost is optional and defaults to zero; Date is optional and defaults to now.
type CreateTransactionRequest struct {
	Amount          decimal.NullDecimal `json:"amount"`
	Cost            decimal.NullDecimal `json:"cost"`
	TransactionType string              `json:"transaction_type"`
	Date            string              `json:"date"`
}
