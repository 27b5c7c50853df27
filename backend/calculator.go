// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidLoan is returned for a non-positive principal or term, or a negative rate.
var ErrInvalidLoan = errors.New("invalid loan parameters")

// MonthlyPayment computes the fixed annuity installment for a mortgage of principal
// repaid over years at annualRatePct percent per year. The result is rounded to
// whole currency units.
func MonthlyPayment(principal, annualRatePct decimal.Decimal, years int) (decimal.Decimal, error) {
	if !principal.IsPositive() || years <= 0 || annualRatePct.IsNegative() {
		return decimal.Zero, ErrInvalidLoan
	}
	n := decimal.NewFromInt(int64(years) * 12)
	if annualRatePct.IsZero() {
		return principal.Div(n).Round(0), nil
	}

	// P * r * (1+r)^n / ((1+r)^n - 1), r monthly.
	r := annualRatePct.Div(decimal.NewFromInt(1200))
	growth := decimal.NewFromInt(1).Add(r).Pow(n)
	payment := principal.Mul(r).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
	return payment.Round(0), nil
}
