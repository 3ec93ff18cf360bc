// Package costbasis derives an asset's held quantity and weighted average cost from its
// transaction ledger.
//
// Buys add their amount to the held quantity and their cost to the cost basis. Sells
// consume inventory at the current average cost: the cost basis drops by
// cost_basis × amount / quantity, which leaves the average unit cost unchanged. Realized
// gains are not tracked.
package costbasis

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Rahul-Chotaliya/tradehub/internal/apperrors"
	"github.com/Rahul-Chotaliya/tradehub/internal/model"
)

// Policy decides what happens when a sell exceeds the quantity held.
type Policy string

const (
	// PolicyReject fails the calculation with apperrors.ErrInsufficientHoldings.
	PolicyReject Policy = "reject"
	// PolicyAllowNegative lets the held quantity go below zero.
	PolicyAllowNegative Policy = "allow"
)

// ParsePolicy converts a configuration value into a Policy. Empty means PolicyReject.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyReject:
		return PolicyReject, nil
	case PolicyAllowNegative:
		return PolicyAllowNegative, nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidPolicy, s)
	}
}

// ParseSide converts a transaction type string into a model.Side.
func ParseSide(s string) (model.Side, error) {
	switch side := model.Side(strings.ToLower(strings.TrimSpace(s))); side {
	case model.SideBuy, model.SideSell:
		return side, nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidSide, s)
	}
}

// Digit limits of ledger values, counted the way a SQL DECIMAL(max, places) column counts them.
const (
	AmountMaxDigits     = 50
	AmountDecimalPlaces = 10
	CostMaxDigits       = 100
	CostDecimalPlaces   = 2
)

// FitsDigits reports whether v has at most maxDigits significant digits, of which at most
// decimalPlaces follow the decimal point. It reads only the coefficient length and the
// exponent, so it stays cheap for values like 1e20000000 that are expensive to print or rescale.
func FitsDigits(v decimal.Decimal, maxDigits, decimalPlaces int) bool {
	exp := int64(v.Exponent())
	digits := int64(v.NumDigits())
	decimals := int64(0)
	if exp >= 0 {
		digits += exp
	} else {
		decimals = -exp
		digits = max(digits, decimals)
	}
	return digits <= int64(maxDigits) &&
		decimals <= int64(decimalPlaces) &&
		digits-decimals <= int64(maxDigits-decimalPlaces)
}

// Entry is the part of a transaction the calculator needs.
type Entry struct {
	Amount decimal.Decimal
	Cost   decimal.Decimal
	Side   model.Side
}

// Validate checks a single entry independently of the rest of the ledger.
func (e Entry) Validate() error {
	if !e.Amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	if !FitsDigits(e.Amount, AmountMaxDigits, AmountDecimalPlaces) {
		return apperrors.ErrAmountOutOfRange
	}
	if e.Cost.IsNegative() {
		return apperrors.ErrNegativeCost
	}
	if !FitsDigits(e.Cost, CostMaxDigits, CostDecimalPlaces) {
		return apperrors.ErrCostOutOfRange
	}
	if e.Side != model.SideBuy && e.Side != model.SideSell {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidSide, e.Side)
	}
	return nil
}

// FromTransactions maps ledger rows to calculator entries, preserving order.
func FromTransactions(transactions []model.Transaction) []Entry {
	entries := make([]Entry, len(transactions))
	for i, t := range transactions {
		entries[i] = Entry{Amount: t.Amount, Cost: t.Cost, Side: t.Side}
	}
	return entries
}

// Calculate folds the entries, in the given order, into a Position.
// An empty ledger yields the zero position.
func Calculate(entries []Entry, policy Policy) (model.Position, error) {
	quantity := decimal.Zero
	totalCost := decimal.Zero

	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return model.Position{}, fmt.Errorf("entry %d: %w", i, err)
		}

		switch e.Side {
		case model.SideBuy:
			quantity = quantity.Add(e.Amount)
			totalCost = totalCost.Add(e.Cost)

		case model.SideSell:
			if e.Amount.GreaterThan(quantity) && policy != PolicyAllowNegative {
				return model.Position{}, fmt.Errorf("entry %d: %w: selling %s with %s held",
					i, apperrors.ErrInsufficientHoldings, e.Amount, quantity)
			}

			if quantity.IsPositive() {
				sold := decimal.Min(e.Amount, quantity)
				totalCost = totalCost.Sub(totalCost.Mul(sold).Div(quantity))
			}
			quantity = quantity.Sub(e.Amount)

			if !quantity.IsPositive() {
				totalCost = decimal.Zero
			}
		}
	}

	return model.Position{
		Quantity:    quantity,
		AverageCost: AverageCost(quantity, totalCost),
		TotalCost:   totalCost,
	}, nil
}

// AverageCost returns totalCost / quantity, or zero when nothing is held.
func AverageCost(quantity, totalCost decimal.Decimal) decimal.Decimal {
	if !quantity.IsPositive() {
		return decimal.Zero
	}
	return totalCost.Div(quantity)
}
