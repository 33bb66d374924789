// Package report renders the project budget summary as an XML document for
// spreadsheet and accounting imports.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"

	"github.com/Dan9191/salon-ops/internal/models"
)

// BuildProjectSummary converts a summary into an etree document.
func BuildProjectSummary(summary models.ProjectCostsSummary) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("ProjectCostsSummary")
	addMoney(root, "TotalProjected", summary.TotalProjected)
	addMoney(root, "TotalActual", summary.TotalActual)
	addMoney(root, "RemainingBudget", summary.RemainingBudget)
	addMoney(root, "Variance", summary.Variance)
	root.CreateElement("PercentUsed").SetText(formatRatio(summary.PercentUsed))
	addStatus(root, summary.ActualByStatus)

	categories := root.CreateElement("Categories")
	for _, c := range summary.Categories {
		el := categories.CreateElement("Category")
		el.CreateAttr("id", strconv.FormatInt(c.Category.ID, 10))
		el.CreateAttr("sortOrder", strconv.Itoa(c.Category.SortOrder))
		el.CreateAttr("overBudget", strconv.FormatBool(c.OverBudget()))
		el.CreateElement("Name").SetText(c.Category.Name)
		addMoney(el, "ProjectedTotal", c.Category.ProjectedTotal)
		addMoney(el, "ActualTotal", c.ActualTotal)
		addMoney(el, "Variance", c.Variance)
		el.CreateElement("VariancePct").SetText(formatRatio(c.VariancePct))
		addStatus(el, c.ActualByStatus)
	}

	doc.Indent(2)
	return doc
}

// WriteProjectSummary writes the summary document to w.
func WriteProjectSummary(w io.Writer, summary models.ProjectCostsSummary) error {
	if _, err := BuildProjectSummary(summary).WriteTo(w); err != nil {
		return fmt.Errorf("failed to write project summary xml: %w", err)
	}
	return nil
}

func addMoney(parent *etree.Element, tag string, m models.Money) {
	parent.CreateElement(tag).SetText(m.StringFixed(2))
}

func addStatus(parent *etree.Element, b models.StatusBreakdown) {
	el := parent.CreateElement("ActualByStatus")
	addMoney(el, "Planned", b.Planned)
	addMoney(el, "Committed", b.Committed)
	addMoney(el, "Paid", b.Paid)
}

func formatRatio(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
