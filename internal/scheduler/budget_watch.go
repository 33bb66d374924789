package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/salon-ops/internal/models"
)

// SummarySource produces the current project budget summary.
type SummarySource interface {
	ProjectSummary(ctx context.Context) (models.ProjectCostsSummary, error)
}

// Alerter delivers over-budget notifications.
type Alerter interface {
	SendBudgetAlert(summary models.ProjectCostsSummary, overBudget []models.CategorySummary, at time.Time) error
}

// BudgetWatchJob checks the project budget and alerts when a category or
// the whole project has overspent.
type BudgetWatchJob struct {
	source  SummarySource
	alerter Alerter
	log     *logrus.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewBudgetWatchJob creates the budget watch job
func NewBudgetWatchJob(source SummarySource, alerter Alerter, log *logrus.Logger) *BudgetWatchJob {
	return &BudgetWatchJob{
		source:  source,
		alerter: alerter,
		log:     log,
		timeout: 30 * time.Second,
		now:     time.Now,
	}
}

// Name returns the job name
func (j *BudgetWatchJob) Name() string {
	return "budget_watch"
}

// Run executes the budget check
func (j *BudgetWatchJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	summary, err := j.source.ProjectSummary(ctx)
	if err != nil {
		return fmt.Errorf("failed to load project summary: %w", err)
	}

	over := OverBudgetCategories(summary)
	if len(over) == 0 && !summary.Variance.IsNegative() {
		j.log.Debug("Project within budget")
		return nil
	}

	j.log.WithFields(logrus.Fields{
		"over_budget_categories": len(over),
		"variance":               summary.Variance.StringFixed(2),
	}).Warn("Project over budget")

	if err := j.alerter.SendBudgetAlert(summary, over, j.now()); err != nil {
		return err
	}
	return nil
}

// OverBudgetCategories returns the categories whose actual spend exceeds
// their projection, in summary order.
func OverBudgetCategories(summary models.ProjectCostsSummary) []models.CategorySummary {
	var over []models.CategorySummary
	for _, c := range summary.Categories {
		if c.OverBudget() {
			over = append(over, c)
		}
	}
	return over
}
