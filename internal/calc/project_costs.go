package calc

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Dan9191/salon-ops/internal/models"
)

type statusTotals struct {
	planned, committed, paid decimal.Decimal
}

func (t *statusTotals) add(status models.CostItemStatus, amount decimal.Decimal) {
	switch status {
	case models.StatusCommitted:
		t.committed = t.committed.Add(amount)
	case models.StatusPaid:
		t.paid = t.paid.Add(amount)
	default:
		t.planned = t.planned.Add(amount)
	}
}

func (t statusTotals) breakdown() models.StatusBreakdown {
	return models.StatusBreakdown{
		Planned:   roundMoney(t.planned),
		Committed: roundMoney(t.committed),
		Paid:      roundMoney(t.paid),
	}
}

// AggregateProjectCosts rolls items up into their categories and the
// categories into a project summary. Every item counts as actual spend
// whatever its status; the per-status split is reported separately and is
// informational only. Categories come back ordered by sort_order, then id.
func AggregateProjectCosts(categories []models.CostCategory, items []models.CostItem) (models.ProjectCostsSummary, error) {
	byID := make(map[int64]int, len(categories))
	for i, c := range categories {
		if _, dup := byID[c.ID]; dup {
			return models.ProjectCostsSummary{}, invalid("category.id", "duplicate category id %d", c.ID)
		}
		if err := CheckAmount(fmt.Sprintf("category[%d].projected_total", c.ID), c.ProjectedTotal.Decimal); err != nil {
			return models.ProjectCostsSummary{}, err
		}
		byID[c.ID] = i
	}

	actual := make([]decimal.Decimal, len(categories))
	perStatus := make([]statusTotals, len(categories))
	for _, item := range items {
		idx, ok := byID[item.CategoryID]
		if !ok {
			return models.ProjectCostsSummary{}, invalid("category_id",
				"cost item %d references unknown category %d", item.ID, item.CategoryID)
		}
		if err := CheckAmount(fmt.Sprintf("cost_item[%d].amount", item.ID), item.Amount.Decimal); err != nil {
			return models.ProjectCostsSummary{}, err
		}
		if item.Status != "" && !item.Status.Valid() {
			return models.ProjectCostsSummary{}, invalid("status",
				"cost item %d has unknown status %q", item.ID, item.Status)
		}
		actual[idx] = actual[idx].Add(item.Amount.Decimal)
		perStatus[idx].add(item.Status, item.Amount.Decimal)
	}

	order := make([]int, len(categories))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ca, cb := categories[order[a]], categories[order[b]]
		if ca.SortOrder != cb.SortOrder {
			return ca.SortOrder < cb.SortOrder
		}
		return ca.ID < cb.ID
	})

	totalProjected := decimal.Zero
	totalActual := decimal.Zero
	var portfolio statusTotals
	summaries := make([]models.CategorySummary, 0, len(categories))
	for _, idx := range order {
		c := categories[idx]
		projected := c.ProjectedTotal.Decimal
		variance := projected.Sub(actual[idx])

		summaries = append(summaries, models.CategorySummary{
			Category:       c,
			ActualTotal:    roundMoney(actual[idx]),
			Variance:       roundMoney(variance),
			VariancePct:    ratio(variance, projected),
			ActualByStatus: perStatus[idx].breakdown(),
		})

		totalProjected = totalProjected.Add(projected)
		totalActual = totalActual.Add(actual[idx])
		portfolio.planned = portfolio.planned.Add(perStatus[idx].planned)
		portfolio.committed = portfolio.committed.Add(perStatus[idx].committed)
		portfolio.paid = portfolio.paid.Add(perStatus[idx].paid)
	}

	remaining := roundMoney(totalProjected.Sub(totalActual))
	return models.ProjectCostsSummary{
		TotalProjected:  roundMoney(totalProjected),
		TotalActual:     roundMoney(totalActual),
		RemainingBudget: remaining,
		Variance:        remaining,
		PercentUsed:     ratio(totalActual, totalProjected),
		ActualByStatus:  portfolio.breakdown(),
		Categories:      summaries,
	}, nil
}
