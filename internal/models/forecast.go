package models

import "github.com/shopspring/decimal"

// ForecastMode selects the formula set used to build a snapshot.
type ForecastMode string

const (
	ModeMinimal  ForecastMode = "minimal"
	ModeExpanded ForecastMode = "expanded"
)

// OperationalInputs are the per-request assumptions of a forecast. The
// expanded fields are optional; a nil field counts as zero.
type OperationalInputs struct {
	Mode ForecastMode `json:"mode,omitempty"`

	HaircutsPerDay        int             `json:"haircuts_per_day"`
	PricePerCut           decimal.Decimal `json:"price_per_cut"`
	StylistHoursPerDay    decimal.Decimal `json:"stylist_hours_per_day"`
	StylistHourlyRate     decimal.Decimal `json:"stylist_hourly_rate"`
	OperatingDaysPerMonth int             `json:"operating_days_per_month"`
	NumStylists           int             `json:"num_stylists"`

	RetailSales *decimal.Decimal `json:"retail_sales,omitempty"`
	PartySales  *decimal.Decimal `json:"party_sales,omitempty"`

	StylistPayrollTaxPct *decimal.Decimal `json:"stylist_payroll_tax_pct,omitempty"`
	RetailCOGSPct        *decimal.Decimal `json:"retail_cogs_pct,omitempty"`
	PartyCOGSPct         *decimal.Decimal `json:"party_cogs_pct,omitempty"`
	RoyaltiesPct         *decimal.Decimal `json:"royalties_pct,omitempty"`
	CCFeesPct            *decimal.Decimal `json:"cc_fees_pct,omitempty"`
	AdFundPct            *decimal.Decimal `json:"ad_fund_pct,omitempty"`
}

// HasExpandedFields reports whether any expanded-only field was supplied.
func (in OperationalInputs) HasExpandedFields() bool {
	for _, p := range in.expandedFields() {
		if p != nil {
			return true
		}
	}
	return false
}

func (in OperationalInputs) expandedFields() []*decimal.Decimal {
	return []*decimal.Decimal{
		in.RetailSales, in.PartySales,
		in.StylistPayrollTaxPct, in.RetailCOGSPct, in.PartyCOGSPct,
		in.RoyaltiesPct, in.CCFeesPct, in.AdFundPct,
	}
}

// Dec returns *p, or zero when p is nil.
func Dec(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return *p
}

// RiskFlags are independent health indicators attached to a snapshot.
type RiskFlags struct {
	NegativeCashFlow bool `json:"negative_cash_flow"`
	LaborTooHigh     bool `json:"labor_too_high"`
	MarginTooLow     bool `json:"margin_too_low"`
}

// MinimalFigures are the figures only the minimal formula set produces.
type MinimalFigures struct {
	DailyRevenue      Money   `json:"daily_revenue"`
	MonthlyRevenue    Money   `json:"monthly_revenue"`
	DailyLaborCost    Money   `json:"daily_labor_cost"`
	MonthlyLaborCost  Money   `json:"monthly_labor_cost"`
	GrossMargin       Money   `json:"gross_margin"`
	LaborPctOfRevenue float64 `json:"labor_pct_of_revenue"`
}

// ExpandedFigures are the figures only the expanded formula set produces.
type ExpandedFigures struct {
	ServiceRevenue Money `json:"service_revenue"`
	RetailRevenue  Money `json:"retail_revenue"`
	PartyRevenue   Money `json:"party_revenue"`
	TotalRevenue   Money `json:"total_revenue"`

	StylistLaborCost Money `json:"stylist_labor_cost"`
	LaborTaxCost     Money `json:"labor_tax_cost"`
	TotalLaborCost   Money `json:"total_labor_cost"`

	RetailCOGS Money `json:"retail_cogs"`
	PartyCOGS  Money `json:"party_cogs"`
	TotalCOGS  Money `json:"total_cogs"`

	Royalties             Money `json:"royalties"`
	CCFees                Money `json:"cc_fees"`
	AdFund                Money `json:"ad_fund"`
	TotalVariableExpenses Money `json:"total_variable_expenses"`

	GrossProfit       Money   `json:"gross_profit"`
	GrossProfitMargin float64 `json:"gross_profit_margin"`
	LaborPctOfSales   float64 `json:"labor_pct_of_sales"`
}

// FinancialSnapshot is the read-only result of one forecast. Exactly one of
// the embedded figure sets is non-nil, matching Mode.
type FinancialSnapshot struct {
	Mode ForecastMode `json:"mode"`

	*MinimalFigures
	*ExpandedFigures

	TotalMonthlyFixedCosts Money      `json:"total_monthly_fixed_costs"`
	FixedCosts             FixedCosts `json:"fixed_costs"`
	TotalMonthlyCosts      Money      `json:"total_monthly_costs"`
	NetProfit              Money      `json:"net_profit"`
	NetProfitMargin        float64    `json:"net_profit_margin"`

	RiskFlags RiskFlags `json:"risk_flags"`
}
