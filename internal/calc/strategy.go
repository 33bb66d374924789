package calc

import (
	"github.com/shopspring/decimal"

	"github.com/Dan9191/salon-ops/internal/models"
)

// Strategy is one named formula set turning validated inputs and fixed
// costs into a snapshot.
type Strategy interface {
	Mode() models.ForecastMode
	Compute(in models.OperationalInputs, costs models.FixedCosts) *models.FinancialSnapshot
}

var strategies = map[models.ForecastMode]Strategy{
	models.ModeMinimal:  MinimalStrategy{},
	models.ModeExpanded: ExpandedStrategy{},
}

// StrategyFor looks up the formula set registered for mode.
func StrategyFor(mode models.ForecastMode) (Strategy, bool) {
	s, ok := strategies[mode]
	return s, ok
}

// MinimalStrategy forecasts haircut revenue against stylist labor and fixed
// costs only.
type MinimalStrategy struct{}

func (MinimalStrategy) Mode() models.ForecastMode { return models.ModeMinimal }

func (MinimalStrategy) Compute(in models.OperationalInputs, costs models.FixedCosts) *models.FinancialSnapshot {
	days := fromInt(in.OperatingDaysPerMonth)

	dailyRevenue := fromInt(in.HaircutsPerDay).Mul(in.PricePerCut)
	monthlyRevenue := dailyRevenue.Mul(days)

	dailyLabor := fromInt(in.NumStylists).Mul(in.StylistHoursPerDay).Mul(in.StylistHourlyRate)
	monthlyLabor := dailyLabor.Mul(days)

	fixed := costs.Total()
	totalCosts := monthlyLabor.Add(fixed)

	// Gross margin deliberately excludes labor.
	grossMargin := monthlyRevenue.Sub(fixed)
	netProfit := monthlyRevenue.Sub(totalCosts)

	laborPct := ratio(monthlyLabor, monthlyRevenue)
	netMargin := ratio(netProfit, monthlyRevenue)

	return &models.FinancialSnapshot{
		Mode: models.ModeMinimal,
		MinimalFigures: &models.MinimalFigures{
			DailyRevenue:      roundMoney(dailyRevenue),
			MonthlyRevenue:    roundMoney(monthlyRevenue),
			DailyLaborCost:    roundMoney(dailyLabor),
			MonthlyLaborCost:  roundMoney(monthlyLabor),
			GrossMargin:       roundMoney(grossMargin),
			LaborPctOfRevenue: laborPct,
		},
		TotalMonthlyFixedCosts: roundMoney(fixed),
		FixedCosts:             costs,
		TotalMonthlyCosts:      roundMoney(totalCosts),
		NetProfit:              roundMoney(netProfit),
		NetProfitMargin:        netMargin,
		RiskFlags: EvaluateRisk(RiskInput{
			NetProfit:       netProfit,
			LaborPct:        laborPct,
			NetProfitMargin: &netMargin,
		}),
	}
}

// ExpandedStrategy adds retail and party revenue, payroll tax, cost of goods
// and revenue-based variable expenses.
type ExpandedStrategy struct{}

func (ExpandedStrategy) Mode() models.ForecastMode { return models.ModeExpanded }

func (ExpandedStrategy) Compute(in models.OperationalInputs, costs models.FixedCosts) *models.FinancialSnapshot {
	days := fromInt(in.OperatingDaysPerMonth)

	serviceRevenue := fromInt(in.HaircutsPerDay).Mul(in.PricePerCut).Mul(days)
	retailRevenue := models.Dec(in.RetailSales)
	partyRevenue := models.Dec(in.PartySales)
	totalRevenue := serviceRevenue.Add(retailRevenue).Add(partyRevenue)

	stylistLabor := fromInt(in.NumStylists).Mul(in.StylistHoursPerDay).Mul(in.StylistHourlyRate).Mul(days)
	laborTax := stylistLabor.Mul(models.Dec(in.StylistPayrollTaxPct))
	totalLabor := stylistLabor.Add(laborTax)

	retailCOGS := retailRevenue.Mul(models.Dec(in.RetailCOGSPct))
	partyCOGS := partyRevenue.Mul(models.Dec(in.PartyCOGSPct))
	totalCOGS := retailCOGS.Add(partyCOGS)

	royalties := totalRevenue.Mul(models.Dec(in.RoyaltiesPct))
	ccFees := totalRevenue.Mul(models.Dec(in.CCFeesPct))
	adFund := totalRevenue.Mul(models.Dec(in.AdFundPct))
	totalVariable := royalties.Add(ccFees).Add(adFund)

	fixed := costs.Total()
	totalCosts := decimal.Sum(totalLabor, totalCOGS, totalVariable, fixed)

	grossProfit := totalRevenue.Sub(totalCOGS)
	netProfit := totalRevenue.Sub(totalCosts)

	grossMargin := ratio(grossProfit, totalRevenue)
	netMargin := ratio(netProfit, totalRevenue)
	laborPct := ratio(totalLabor, totalRevenue)

	return &models.FinancialSnapshot{
		Mode: models.ModeExpanded,
		ExpandedFigures: &models.ExpandedFigures{
			ServiceRevenue:        roundMoney(serviceRevenue),
			RetailRevenue:         roundMoney(retailRevenue),
			PartyRevenue:          roundMoney(partyRevenue),
			TotalRevenue:          roundMoney(totalRevenue),
			StylistLaborCost:      roundMoney(stylistLabor),
			LaborTaxCost:          roundMoney(laborTax),
			TotalLaborCost:        roundMoney(totalLabor),
			RetailCOGS:            roundMoney(retailCOGS),
			PartyCOGS:             roundMoney(partyCOGS),
			TotalCOGS:             roundMoney(totalCOGS),
			Royalties:             roundMoney(royalties),
			CCFees:                roundMoney(ccFees),
			AdFund:                roundMoney(adFund),
			TotalVariableExpenses: roundMoney(totalVariable),
			GrossProfit:           roundMoney(grossProfit),
			GrossProfitMargin:     grossMargin,
			LaborPctOfSales:       laborPct,
		},
		TotalMonthlyFixedCosts: roundMoney(fixed),
		FixedCosts:             costs,
		TotalMonthlyCosts:      roundMoney(totalCosts),
		NetProfit:              roundMoney(netProfit),
		NetProfitMargin:        netMargin,
		RiskFlags: EvaluateRisk(RiskInput{
			NetProfit:       netProfit,
			LaborPct:        laborPct,
			NetProfitMargin: &netMargin,
		}),
	}
}
