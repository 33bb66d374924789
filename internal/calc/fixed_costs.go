package calc

import (
	"github.com/shopspring/decimal"

	"github.com/Dan9191/salon-ops/internal/models"
)

// ValidateFixedCosts rejects any negative or sub-cent expense line.
func ValidateFixedCosts(costs models.FixedCosts) error {
	for _, f := range costs.Fields() {
		if err := CheckAmount(f.Name, f.Amount.Decimal); err != nil {
			return err
		}
	}
	return nil
}

// TotalFixedCosts sums every expense line, rounded to cents.
func TotalFixedCosts(costs models.FixedCosts) (decimal.Decimal, error) {
	if err := ValidateFixedCosts(costs); err != nil {
		return decimal.Zero, err
	}
	return costs.Total(), nil
}
