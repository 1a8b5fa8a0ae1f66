package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincast/internal/models"
	"fincast/internal/services/classifier"
)

func f(v float64) *float64 { return &v }

func TestGrouped(t *testing.T) {
	tests := []struct {
		v       float64
		maxFrac int
		want    string
	}{
		{60000, 0, "60,000"},
		{100000, 0, "1,00,000"},
		{12345678, 0, "1,23,45,678"},
		{999, 3, "999"},
		{12345.678, 3, "12,345.678"},
		{1234.5, 3, "1,234.5"},
		{-52000, 0, "-52,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grouped(tt.v, tt.maxFrac), "Grouped(%v, %d)", tt.v, tt.maxFrac)
	}
}

func TestProfileSummary(t *testing.T) {
	assert.Equal(t, "", ProfileSummary(nil))

	p := models.Profile{
		"Income":     60000.0,
		"Age":        30.0,
		"Dependents": 1.0,
		"City_Tier":  "Tier 2",
	}
	assert.Equal(t, "Sample Data: Income ₹60,000 • Age 30 • Dependents 1 • Tier 2", ProfileSummary(p))

	// Income must be numeric; null ages still show; empty tiers are dropped
	p = models.Profile{"Income": "60000", "Age": nil, "City_Tier": ""}
	assert.Equal(t, "Sample Data: Age null", ProfileSummary(p))

	assert.Equal(t, "Sample Data: ", ProfileSummary(models.Profile{}))
}

func TestNewPredictionFormatting(t *testing.T) {
	r := &models.PredictionResult{
		PredictedDesiredSavings: f(12345.678),
		DesiredSavingsAmount:    f(15000),
		Shortfall:               f(2654.322),
		OverspendProbability:    f(0.1234),
		ElapsedMS:               842,
	}

	v := NewPrediction(r, true)
	assert.Empty(t, v.Error)
	assert.Equal(t, "12,345.678", v.Predicted)
	assert.Equal(t, "15,000", v.Desired)
	assert.Equal(t, "2,654.322", v.Shortfall)
	assert.True(t, v.ShowShortfall())
	assert.Equal(t, "12.3%", v.Probability)
	assert.Equal(t, "Notebook runtime: 842 ms", v.Runtime)
	assert.False(t, v.InsightsSet)
	assert.Nil(t, v.Breakdown)
	assert.False(t, v.ShowRecommendations)
}

func TestNewPredictionMissingValues(t *testing.T) {
	v := NewPrediction(&models.PredictionResult{PredictedDesiredSavings: f(0)}, true)
	assert.Equal(t, "N/A", v.Predicted)
	assert.Equal(t, "N/A", v.Probability)
	assert.Empty(t, v.Runtime)
	assert.False(t, v.ShowShortfall())

	// Shortfall without a desired amount is not shown
	v = NewPrediction(&models.PredictionResult{Shortfall: f(100)}, true)
	assert.False(t, v.ShowShortfall())

	// A zero probability is still a number
	v = NewPrediction(&models.PredictionResult{OverspendProbability: f(0)}, true)
	assert.Equal(t, "0.0%", v.Probability)
}

func TestNewPredictionError(t *testing.T) {
	v := NewPrediction(&models.PredictionResult{Error: "Model not loaded", ElapsedMS: 10}, true)
	assert.Equal(t, "Model not loaded", v.Error)
	assert.Empty(t, v.Runtime)

	assert.Equal(t, "An error occurred", PredictionFailed("").Error)
}

func TestNewPredictionChartsOnlyWhenRequested(t *testing.T) {
	r := &models.PredictionResult{
		Charts: &models.Charts{Pie: &models.LabeledSeries{Labels: []string{"Rent"}, Values: []float64{1}}},
	}
	assert.Len(t, NewPrediction(r, true).Charts, 1)
	assert.Empty(t, NewPrediction(r, false).Charts)
}

func TestNewPredictionInsights(t *testing.T) {
	v := NewPrediction(&models.PredictionResult{Insights: []string{}}, false)
	assert.True(t, v.InsightsSet, "an empty list still clears the insights")
	assert.Empty(t, v.Insights)
}

func TestNewPredictionRecommendations(t *testing.T) {
	r := &models.PredictionResult{Recommendations: []string{
		"==========",
		"■ SPENDING ANALYSIS",
		"    • Cook at home",
		"",
	}}
	v := NewPrediction(r, false)
	require.True(t, v.ShowRecommendations)
	require.Len(t, v.Recommendations, 2)
	assert.Equal(t, classifier.SectionHeader, v.Recommendations[0].Kind)
	assert.Equal(t, "• Cook at home", v.Recommendations[1].Text)

	v = NewPrediction(&models.PredictionResult{Recommendations: []string{"===="}}, false)
	assert.True(t, v.ShowRecommendations)
	assert.Empty(t, v.Recommendations)
}

func TestNewBreakdown(t *testing.T) {
	assert.Nil(t, NewBreakdown(nil))
	assert.Nil(t, NewBreakdown(&models.ExpenseBreakdown{Summary: "empty"}))

	b := NewBreakdown(&models.ExpenseBreakdown{
		CityTier:              "Tier 1",
		Summary:               "2 categories above recommendation",
		TotalPotentialSavings: 2500,
		Categories: []models.CategoryBreakdown{
			{
				Category: "Rent", Status: "🔴 High",
				CurrentAmount: 30000, CurrentPercentage: 50,
				RecommendedAmount: 21000, RecommendedPercentage: 35,
				CityTierAverage: 24000, PotentialSaving: 9000,
				Advice: []string{"Consider a flatmate"},
			},
			{Category: "Groceries", Status: "🟢 Good", CurrentAmount: 5000, CurrentPercentage: 8.3},
		},
	})
	require.NotNil(t, b)
	assert.Equal(t, "30,000", b.AnnualPotential)
	require.Len(t, b.Categories, 2)

	rent := b.Categories[0]
	assert.Equal(t, "status-high", rent.StatusClass)
	assert.Equal(t, "₹30,000 (50%)", rent.Current)
	assert.Equal(t, "₹21,000 (35%)", rent.Recommended)
	assert.Equal(t, "Tier 1 Average:", rent.AverageLabel)
	assert.Equal(t, "₹24,000", rent.Average)
	assert.Equal(t, "₹9,000/month", rent.PotentialSaving)

	groceries := b.Categories[1]
	assert.Equal(t, "status-good", groceries.StatusClass)
	assert.Equal(t, "₹5,000 (8.3%)", groceries.Current)
	assert.Empty(t, groceries.PotentialSaving)
}

func TestNewBreakdownDefaults(t *testing.T) {
	b := NewBreakdown(&models.ExpenseBreakdown{Categories: []models.CategoryBreakdown{{Category: "Rent"}}})
	require.NotNil(t, b)
	assert.Empty(t, b.AnnualPotential)
	assert.Equal(t, "City Average:", b.Categories[0].AverageLabel)
}

func TestNewWarning(t *testing.T) {
	w := NewWarning("prediction-form-Rent-warning", models.Classification{}, false)
	assert.True(t, w.Empty())
	assert.Equal(t, "prediction-form-Rent-warning", w.SlotID)

	w = NewWarning("slot", models.Classification{Status: models.StatusHigh, Message: "⚠️ HIGH"}, true)
	assert.False(t, w.Empty())
	assert.Equal(t, "🔴", w.Icon)
	assert.Equal(t, "⚠️ HIGH", w.Message)
}
