package calc

import (
	"github.com/shopspring/decimal"

	"github.com/Dan9191/salon-ops/internal/models"
)

// roundMoney rounds to cents, half away from zero.
func roundMoney(d decimal.Decimal) models.Money {
	return models.NewMoney(d.Round(2))
}

func divide(num, den decimal.Decimal) (decimal.Decimal, error) {
	if den.IsZero() {
		return decimal.Zero, errArithmeticDegenerate
	}
	return num.Div(den), nil
}

// ratio returns num/den as an unrounded fraction, or 0 when den is zero.
func ratio(num, den decimal.Decimal) float64 {
	q, err := divide(num, den)
	if err != nil {
		return 0
	}
	return q.InexactFloat64()
}

func fromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

var one = decimal.NewFromInt(1)

func checkNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return invalid(field, "must be >= 0, got %s", d.String())
	}
	return nil
}

var cent = decimal.New(1, -2)

// CheckAmount rejects a stored currency amount that is negative or finer
// than a cent.
func CheckAmount(field string, d decimal.Decimal) error {
	if err := checkNonNegative(field, d); err != nil {
		return err
	}
	if !d.Mod(cent).IsZero() {
		return invalid(field, "must have at most 2 decimal places, got %s", d.String())
	}
	return nil
}

func checkCount(field string, n int) error {
	if n < 0 {
		return invalid(field, "must be >= 0, got %d", n)
	}
	return nil
}

func checkFraction(field string, p *decimal.Decimal) error {
	if p == nil {
		return nil
	}
	if p.IsNegative() || p.GreaterThan(one) {
		return invalid(field, "must be a fraction between 0 and 1, got %s", p.String())
	}
	return nil
}
