package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "moneyhub/internal/errors"
)

// Amount columns are NUMERIC(20, 2).
const amountScale = 2

var amountLimit = decimal.New(1, 20-amountScale)

// checkAmountFits rejects values the amount columns cannot store exactly.
func checkAmountFits(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(amountScale)) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("%s must have at most %d decimal places", field, amountScale))
	}
	if amount.Abs().GreaterThanOrEqual(amountLimit) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("%s must be less than %s", field, amountLimit.String()))
	}
	return nil
}
