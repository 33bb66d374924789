package report

import (
	"bytes"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/salon-ops/internal/models"
)

func TestWriteProjectSummary(t *testing.T) {
	m := models.MoneyFromString
	summary := models.ProjectCostsSummary{
		TotalProjected:  m("1200"),
		TotalActual:     m("650"),
		RemainingBudget: m("550"),
		Variance:        m("550"),
		PercentUsed:     0.541666,
		ActualByStatus:  models.StatusBreakdown{Planned: m("400"), Paid: m("250")},
		Categories: []models.CategorySummary{
			{
				Category:       models.CostCategory{ID: 2, Name: "Signage & Lights", ProjectedTotal: m("200")},
				ActualTotal:    m("250"),
				Variance:       m("-50"),
				VariancePct:    -0.25,
				ActualByStatus: models.StatusBreakdown{Paid: m("250")},
			},
			{
				Category:    models.CostCategory{ID: 1, Name: "Build", ProjectedTotal: m("1000"), SortOrder: 1},
				ActualTotal: m("400"),
				Variance:    m("600"),
				VariancePct: 0.6,
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProjectSummary(&buf, summary))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

	root := doc.SelectElement("ProjectCostsSummary")
	require.NotNil(t, root)
	assert.Equal(t, "1200.00", root.SelectElement("TotalProjected").Text())
	assert.Equal(t, "0.5417", root.SelectElement("PercentUsed").Text())
	assert.Equal(t, "0.00", root.FindElement("ActualByStatus/Committed").Text())

	cats := root.FindElements("Categories/Category")
	require.Len(t, cats, 2)
	assert.Equal(t, "2", cats[0].SelectAttrValue("id", ""))
	assert.Equal(t, "true", cats[0].SelectAttrValue("overBudget", ""))
	assert.Equal(t, "Signage & Lights", cats[0].SelectElement("Name").Text())
	assert.Equal(t, "-50.00", cats[0].SelectElement("Variance").Text())
	assert.Equal(t, "false", cats[1].SelectAttrValue("overBudget", ""))
	assert.Equal(t, "1", cats[1].SelectAttrValue("sortOrder", ""))
}
