package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_JSON(t *testing.T) {
	var c CostCategory
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Build-out","projected_total":1500}`), &c))
	assert.Equal(t, "1500.00", c.ProjectedTotal.StringFixed(2))

	require.NoError(t, json.Unmarshal([]byte(`{"projected_total":"7000.5"}`), &c))
	out, err := json.Marshal(c.ProjectedTotal)
	require.NoError(t, err)
	assert.Equal(t, `"7000.50"`, string(out))
}

func TestMoney_ZeroValueMarshals(t *testing.T) {
	out, err := json.Marshal(FixedCosts{})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"rent":"0.00"`)
	assert.NotContains(t, string(out), `"id"`)
}

func TestDate_RoundTrip(t *testing.T) {
	var item CostItem
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2026-03-14"}`), &item))
	assert.Equal(t, time.March, item.Date.Month())

	out, err := json.Marshal(item.Date)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-14"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"date":"14/03/2026"}`), &item))
}

func TestDate_Scan(t *testing.T) {
	var dt Date
	require.NoError(t, dt.Scan(time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "2026-01-02", dt.String())

	require.NoError(t, dt.Scan("2026-02-03"))
	assert.Equal(t, "2026-02-03", dt.String())

	assert.Error(t, dt.Scan(42))
}

func TestFixedCosts_Total(t *testing.T) {
	f := FixedCosts{Rent: MoneyFromString("100.10"), Other: MoneyFromString("0.005")}
	assert.Equal(t, "100.11", f.Total().StringFixed(2))
	assert.Len(t, f.Fields(), 21)
}

func TestOperationalInputs_HasExpandedFields(t *testing.T) {
	var in OperationalInputs
	require.NoError(t, json.Unmarshal([]byte(`{"haircuts_per_day":10,"price_per_cut":30}`), &in))
	assert.False(t, in.HasExpandedFields())

	require.NoError(t, json.Unmarshal([]byte(`{"ad_fund_pct":0}`), &in))
	assert.True(t, in.HasExpandedFields())
}
