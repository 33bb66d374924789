package calc

import (
	"github.com/shopspring/decimal"

	"github.com/Dan9191/salon-ops/internal/models"
)

// ComputeForecast validates the inputs and fixed costs, picks the formula
// set and returns the snapshot. It holds no state: identical arguments give
// identical snapshots.
func ComputeForecast(in models.OperationalInputs, costs models.FixedCosts) (*models.FinancialSnapshot, error) {
	if err := ValidateFixedCosts(costs); err != nil {
		return nil, err
	}
	if err := ValidateInputs(in); err != nil {
		return nil, err
	}
	mode, err := SelectMode(in)
	if err != nil {
		return nil, err
	}
	strategy, _ := StrategyFor(mode)
	return strategy.Compute(in, costs), nil
}

// SelectMode honours an explicit mode; otherwise any expanded field switches
// the forecast to the expanded formulas.
func SelectMode(in models.OperationalInputs) (models.ForecastMode, error) {
	if in.Mode != "" {
		if _, ok := StrategyFor(in.Mode); !ok {
			return "", invalid("mode", "unknown forecast mode %q", in.Mode)
		}
		return in.Mode, nil
	}
	if in.HasExpandedFields() {
		return models.ModeExpanded, nil
	}
	return models.ModeMinimal, nil
}

// ValidateInputs rejects negative amounts and counts, and percentages
// outside [0, 1].
func ValidateInputs(in models.OperationalInputs) error {
	counts := []struct {
		field string
		n     int
	}{
		{"haircuts_per_day", in.HaircutsPerDay},
		{"operating_days_per_month", in.OperatingDaysPerMonth},
		{"num_stylists", in.NumStylists},
	}
	for _, c := range counts {
		if err := checkCount(c.field, c.n); err != nil {
			return err
		}
	}

	if err := checkNonNegative("price_per_cut", in.PricePerCut); err != nil {
		return err
	}
	if err := checkNonNegative("stylist_hours_per_day", in.StylistHoursPerDay); err != nil {
		return err
	}
	if err := checkNonNegative("stylist_hourly_rate", in.StylistHourlyRate); err != nil {
		return err
	}
	if err := checkNonNegative("retail_sales", models.Dec(in.RetailSales)); err != nil {
		return err
	}
	if err := checkNonNegative("party_sales", models.Dec(in.PartySales)); err != nil {
		return err
	}

	percentages := []struct {
		field string
		p     *decimal.Decimal
	}{
		{"stylist_payroll_tax_pct", in.StylistPayrollTaxPct},
		{"retail_cogs_pct", in.RetailCOGSPct},
		{"party_cogs_pct", in.PartyCOGSPct},
		{"royalties_pct", in.RoyaltiesPct},
		{"cc_fees_pct", in.CCFeesPct},
		{"ad_fund_pct", in.AdFundPct},
	}
	for _, pct := range percentages {
		if err := checkFraction(pct.field, pct.p); err != nil {
			return err
		}
	}
	return nil
}
