package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/salon-ops/internal/models"
)

func m(s string) models.Money {
	return models.MoneyFromString(s)
}

// pigtailsFixedCosts is the fixed-cost sheet of the reference salon.
func pigtailsFixedCosts() models.FixedCosts {
	return models.FixedCosts{
		Rent:                   m("6286.70"),
		Utilities:              m("800.00"),
		Telephone:              m("250.00"),
		Maintenance:            m("300.00"),
		Advertising:            m("1200.00"),
		Insurance:              m("200.00"),
		ProfessionalFees:       m("300.00"),
		ReceptionistLabor:      m("1700.00"),
		ReceptionistPayrollTax: m("170.00"),
		Travel:                 m("50.00"),
		MealsEntertainment:     m("100.00"),
		Training:               m("50.00"),
		TaxesLicenses:          m("150.00"),
		DebtService:            m("2600.00"),
		Postage:                m("25.00"),
		POSSystem:              m("300.00"),
		DonationsPromotional:   m("150.00"),
		StoreSupplies:          m("100.00"),
		OfficeSupplies:         m("100.00"),
	}
}

func TestTotalFixedCosts_SumsEveryField(t *testing.T) {
	total, err := TotalFixedCosts(pigtailsFixedCosts())
	require.NoError(t, err)
	assert.Equal(t, "14831.70", total.StringFixed(2))
}

func TestTotalFixedCosts_MinimalFieldsOnly(t *testing.T) {
	costs := models.FixedCosts{
		Rent:        m("2000"),
		Insurance:   m("150.25"),
		Utilities:   m("300.50"),
		Software:    m("49.99"),
		DebtService: m("400"),
		Other:       m("99.26"),
	}
	total, err := TotalFixedCosts(costs)
	require.NoError(t, err)
	assert.Equal(t, "3000.00", total.StringFixed(2))
}

func TestTotalFixedCosts_IndependentOfFieldOrder(t *testing.T) {
	a := models.FixedCosts{Rent: m("0.10"), Other: m("0.20"), Software: m("0.30")}
	b := models.FixedCosts{Rent: m("0.30"), Other: m("0.10"), Software: m("0.20")}

	ta, err := TotalFixedCosts(a)
	require.NoError(t, err)
	tb, err := TotalFixedCosts(b)
	require.NoError(t, err)
	assert.True(t, ta.Equal(tb), "%s != %s", ta, tb)
	assert.Equal(t, "0.60", ta.StringFixed(2))
}

func TestTotalFixedCosts_EmptyRecordIsZero(t *testing.T) {
	total, err := TotalFixedCosts(models.FixedCosts{})
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestTotalFixedCosts_RejectsNegativeField(t *testing.T) {
	costs := pigtailsFixedCosts()
	costs.Postage = m("-1")

	_, err := TotalFixedCosts(costs)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "postage", ve.Field)
}

func TestTotalFixedCosts_RejectsSubCentField(t *testing.T) {
	costs := pigtailsFixedCosts()
	costs.Rent = m("2500.005")

	_, err := TotalFixedCosts(costs)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "rent", ve.Field)
}

func TestCheckAmount(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"0", false},
		{"12.5", false},
		{"12.50", false},
		{"12.5000", false},
		{"12.505", true},
		{"0.001", true},
		{"-0.01", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := CheckAmount("amount", m(tt.in).Decimal)
			assert.Equal(t, tt.wantErr, IsValidation(err), "got %v", err)
		})
	}
}
