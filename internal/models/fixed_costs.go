package models

import "github.com/shopspring/decimal"

// FixedCosts holds the monthly recurring expenses of the salon. Only one
// record exists per deployment.
type FixedCosts struct {
	ID int64 `json:"id,omitempty"`

	// Occupancy
	Rent        Money `json:"rent"`
	Utilities   Money `json:"utilities"`
	Telephone   Money `json:"telephone"`
	Maintenance Money `json:"maintenance"`

	// General & administrative
	Advertising            Money `json:"advertising"`
	Insurance              Money `json:"insurance"`
	ProfessionalFees       Money `json:"professional_fees"`
	ReceptionistLabor      Money `json:"receptionist_labor"`
	ReceptionistPayrollTax Money `json:"receptionist_payroll_tax"`
	Travel                 Money `json:"travel"`
	MealsEntertainment     Money `json:"meals_entertainment"`
	Training               Money `json:"training"`
	TaxesLicenses          Money `json:"taxes_licenses"`
	DebtService            Money `json:"debt_service"`
	Postage                Money `json:"postage"`
	POSSystem              Money `json:"pos_system"`
	DonationsPromotional   Money `json:"donations_promotional"`
	StoreSupplies          Money `json:"store_supplies"`
	OfficeSupplies         Money `json:"office_supplies"`

	Software Money `json:"software"`
	Other    Money `json:"other"`
}

// FixedCostField names one expense line of a FixedCosts record.
type FixedCostField struct {
	Name   string
	Amount *Money
}

// Fields lists every expense line in column order. Amounts point into f so
// callers can both read and scan into them.
func (f *FixedCosts) Fields() []FixedCostField {
	return []FixedCostField{
		{"rent", &f.Rent},
		{"utilities", &f.Utilities},
		{"telephone", &f.Telephone},
		{"maintenance", &f.Maintenance},
		{"advertising", &f.Advertising},
		{"insurance", &f.Insurance},
		{"professional_fees", &f.ProfessionalFees},
		{"receptionist_labor", &f.ReceptionistLabor},
		{"receptionist_payroll_tax", &f.ReceptionistPayrollTax},
		{"travel", &f.Travel},
		{"meals_entertainment", &f.MealsEntertainment},
		{"training", &f.Training},
		{"taxes_licenses", &f.TaxesLicenses},
		{"debt_service", &f.DebtService},
		{"postage", &f.Postage},
		{"pos_system", &f.POSSystem},
		{"donations_promotional", &f.DonationsPromotional},
		{"store_supplies", &f.StoreSupplies},
		{"office_supplies", &f.OfficeSupplies},
		{"software", &f.Software},
		{"other", &f.Other},
	}
}

// Total returns the sum of every expense line rounded to cents.
func (f FixedCosts) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, field := range f.Fields() {
		sum = sum.Add(field.Amount.Decimal)
	}
	return sum.Round(2)
}
