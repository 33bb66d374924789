package models

// CostItemStatus is informational; it does not affect roll-ups.
type CostItemStatus string

const (
	StatusPlanned   CostItemStatus = "planned"
	StatusCommitted CostItemStatus = "committed"
	StatusPaid      CostItemStatus = "paid"
)

// Valid reports whether s is one of the known statuses.
func (s CostItemStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusCommitted, StatusPaid:
		return true
	}
	return false
}

// CostCategory is a budget bucket of the build-out project.
type CostCategory struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ProjectedTotal Money  `json:"projected_total"`
	SortOrder      int    `json:"sort_order"`
}

// CostItem is one line of actual spend against a category.
type CostItem struct {
	ID          int64          `json:"id"`
	CategoryID  int64          `json:"category_id"`
	Description string         `json:"description"`
	Vendor      string         `json:"vendor"`
	Amount      Money          `json:"amount"`
	Status      CostItemStatus `json:"status"`
	Date        Date           `json:"date"`
}

// StatusBreakdown splits spend by item status. It is reported alongside the
// actual totals and never replaces them.
type StatusBreakdown struct {
	Planned   Money `json:"planned"`
	Committed Money `json:"committed"`
	Paid      Money `json:"paid"`
}

// CategorySummary is the roll-up of one category.
type CategorySummary struct {
	Category       CostCategory    `json:"category"`
	ActualTotal    Money           `json:"actual_total"`
	Variance       Money           `json:"variance"`
	VariancePct    float64         `json:"variance_pct"`
	ActualByStatus StatusBreakdown `json:"actual_by_status"`
}

// OverBudget reports whether actual spend exceeds the projection.
func (c CategorySummary) OverBudget() bool {
	return c.Variance.IsNegative()
}

// ProjectCostsSummary is the portfolio-level roll-up of all categories.
type ProjectCostsSummary struct {
	TotalProjected  Money             `json:"total_projected"`
	TotalActual     Money             `json:"total_actual"`
	RemainingBudget Money             `json:"remaining_budget"`
	Variance        Money             `json:"variance"`
	PercentUsed     float64           `json:"percent_used"`
	ActualByStatus  StatusBreakdown   `json:"actual_by_status"`
	Categories      []CategorySummary `json:"categories"`
}
