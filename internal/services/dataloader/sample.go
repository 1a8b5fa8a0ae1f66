package dataloader

import (
	"math"

	"fincast/internal/models"
)

// Sample builds the snapshot of the reference household: ₹60,000 income in
// a Tier 2 city saving 15%.
func Sample() *models.Snapshot {
	months := make([]float64, 12)
	projection := make([]float64, 12)
	for i := range months {
		m := float64(i + 1)
		months[i] = m
		projection[i] = math.Round(35000*0.15*m*1.005*100) / 100
	}

	return &models.Snapshot{
		Charts: &models.Charts{
			Scatter: &models.ScatterSeries{
				Income:        []float64{45000, 52000, 60000, 72000, 81000, 67000, 55000, 41000, 38000, 30000},
				TotalExpenses: []float64{20000, 23000, 25000, 30000, 33000, 28000, 24000, 18000, 17000, 14000},
				CityTier: []string{
					models.Tier1, models.Tier2, models.Tier2, models.Tier1, models.Tier3,
					models.Tier2, models.Tier1, models.Tier3, models.Tier2, models.Tier1,
				},
				SavingsPct: []float64{12, 14, 15, 16, 18, 15, 13, 11, 10, 9},
			},
			Pie: &models.LabeledSeries{
				Labels: []string{
					models.Rent, models.LoanRepayment, models.Insurance, models.Groceries,
					models.Transport, models.EatingOut, models.Entertainment, models.Utilities,
					models.Healthcare, models.Education, models.Miscellaneous,
				},
				Values: []float64{9000, 2500, 1500, 5200, 2200, 1400, 1300, 2300, 1600, 2200, 800},
			},
			Bar: &models.LabeledSeries{
				Labels: []string{"Professional", "Self_Employed", "Student", "Retired"},
				Values: []float64{31000, 29500, 22000, 18000},
			},
			Projection: &models.ProjectionSeries{Months: months, Values: projection},
			Heatmap: &models.HeatmapSeries{
				Labels: []string{
					models.FieldIncome, models.FieldTotalExpenses, models.FieldDesiredSavings,
					models.FieldDisposableIncome, models.FieldDependents,
				},
				Matrix: [][]float64{
					{1.0, 0.82, 0.65, 0.91, -0.12},
					{0.82, 1.0, 0.58, 0.42, -0.05},
					{0.65, 0.58, 1.0, 0.71, 0.02},
					{0.91, 0.42, 0.71, 1.0, -0.18},
					{-0.12, -0.05, 0.02, -0.18, 1.0},
				},
			},
		},
		Insights: []string{
			"Sample household allocates 42% of income to rent and necessities.",
			"Savings rate fixed at 15%.",
			"Disposable income of ₹35,000 keeps overspend risk low.",
			"Upgrade the inputs to see personalized notebook predictions.",
		},
		Options: &models.Options{
			Occupations: []string{"Salaried", "Professional", "Student", "Self_Employed"},
			CityTiers:   []string{models.Tier1, models.Tier2, models.Tier3},
		},
		Meta: &models.Meta{Records: 1},
		SampleProfile: models.Profile{
			models.FieldIncome:           60000.0,
			models.FieldAge:              30.0,
			models.FieldDependents:       1.0,
			"Occupation_encoded":         1.0,
			"City_Tier_encoded":          1.0,
			models.FieldTotalExpenses:    25000.0,
			models.FieldDesiredSavings:   15.0,
			models.FieldDisposableIncome: 35000.0,
			models.FieldOccupation:       "Salaried",
			models.FieldCityTier:         models.Tier2,
			"source":                     "step_7_notebook",
		},
	}
}
