package calc

import (
	"github.com/shopspring/decimal"

	"github.com/Dan9191/salon-ops/internal/models"
)

const (
	// LaborPctThreshold is the labor share of revenue above which a salon
	// is considered overstaffed.
	LaborPctThreshold = 0.45
	// MinNetProfitMargin is the net margin below which a forecast is flagged.
	MinNetProfitMargin = 0.10
)

// RiskInput carries the intermediate figures the risk flags are derived
// from. NetProfitMargin is nil when the margin was not computed, in which
// case margin_too_low stays false.
type RiskInput struct {
	NetProfit       decimal.Decimal
	LaborPct        float64
	NetProfitMargin *float64
}

// EvaluateRisk derives the health flags. The flags are independent.
func EvaluateRisk(in RiskInput) models.RiskFlags {
	flags := models.RiskFlags{
		NegativeCashFlow: in.NetProfit.IsNegative(),
		LaborTooHigh:     in.LaborPct > LaborPctThreshold,
	}
	if in.NetProfitMargin != nil {
		flags.MarginTooLow = *in.NetProfitMargin < MinNetProfitMargin
	}
	return flags
}
