package evaluator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincast/internal/models"
	"fincast/internal/services/guidance"
)

func TestClassifyNoClassification(t *testing.T) {
	tests := []struct {
		name     string
		category string
		amount   float64
		income   float64
	}{
		{"zero income", models.Rent, 10000, 0},
		{"zero amount", models.Rent, 0, 60000},
		{"both zero", models.Rent, 0, 0},
		{"unknown category", "Pets", 5000, 60000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Classify(tt.category, tt.amount, tt.income, models.Tier2)
			assert.False(t, ok)
		})
	}
}

func TestClassifyStatuses(t *testing.T) {
	// Tier 2 rent is 28% of income: 16800 on 60000
	tests := []struct {
		name   string
		amount float64
		want   models.ExpenseStatus
	}{
		{"well under", 10000, models.StatusGood},
		{"at recommendation", 16800, models.StatusGood},
		{"just over 1.1x", 18500, models.StatusModerate},
		{"between bands", 20000, models.StatusModerate},
		{"over 1.3x", 22000, models.StatusHigh},
		{"far over", 40000, models.StatusHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := Classify(models.Rent, tt.amount, 60000, models.Tier2)
			require.True(t, ok)
			assert.Equal(t, tt.want, c.Status)
		})
	}
}

func TestClassifyBoundaries(t *testing.T) {
	for _, income := range []float64{1000, 25000, 60000, 123457, 999999} {
		for _, category := range models.ExpenseCategories {
			pct, _ := guidance.RecommendedPercent(models.Tier1, category)
			recommended := income * (pct / 100)

			c, ok := Classify(category, recommended*HighFactor, income, models.Tier1)
			require.True(t, ok)
			assert.Equal(t, models.StatusHigh, c.Status, "%s at 1.3x on %v", category, income)

			c, ok = Classify(category, recommended*ModerateFactor, income, models.Tier1)
			require.True(t, ok)
			assert.NotEqual(t, models.StatusHigh, c.Status, "%s at 1.1x on %v", category, income)

			c, ok = Classify(category, recommended, income, models.Tier1)
			require.True(t, ok)
			assert.Equal(t, models.StatusGood, c.Status, "%s at 1.0x on %v", category, income)
		}
	}
}

func TestClassifyTypedBoundaries(t *testing.T) {
	tests := []struct {
		category string
		amount   float64
		income   float64
		tier     string
		want     models.ExpenseStatus
	}{
		{models.Rent, 36400, 100000, models.Tier2, models.StatusHigh},
		{models.Rent, 36399.99, 100000, models.Tier2, models.StatusModerate},
		{models.Rent, 21840, 60000, models.Tier2, models.StatusHigh},
		{models.Rent, 45500, 100000, models.Tier1, models.StatusHigh},
		{models.Groceries, 6500, 50000, models.Tier2, models.StatusHigh},
		{models.Transport, 13000, 100000, models.Tier2, models.StatusHigh},
		{models.Rent, 30800, 100000, models.Tier2, models.StatusGood},
		{models.Rent, 30800.01, 100000, models.Tier2, models.StatusModerate},
	}

	for _, tt := range tests {
		c, ok := Classify(tt.category, tt.amount, tt.income, tt.tier)
		require.True(t, ok)
		assert.Equal(t, tt.want, c.Status, "%s %v of %v in %s", tt.category, tt.amount, tt.income, tt.tier)
	}
}

func TestClassifyMessages(t *testing.T) {
	c, ok := Classify(models.Rent, 30000, 60000, models.Tier2)
	require.True(t, ok)
	assert.Equal(t, models.StatusHigh, c.Status)
	assert.Equal(t,
		"⚠️ HIGH: 50.0% of income (Recommended: 28%). Save ₹13200/month. "+
			"Consider relocating to cheaper areas or finding roommates",
		c.Message)
	assert.InDelta(t, 13200.0, c.Excess, 0.001)

	c, ok = Classify(models.Rent, 19000, 60000, models.Tier2)
	require.True(t, ok)
	assert.Equal(t, "⚠️ MODERATE: 31.7% of income (Recommended: 28%). Can save ₹2200/month.", c.Message)

	c, ok = Classify(models.Rent, 12000, 60000, models.Tier2)
	require.True(t, ok)
	assert.Equal(t, "✓ GOOD: 20.0% of income (within 28% recommendation for Tier 2)", c.Message)
}

func TestClassifyTierAdvice(t *testing.T) {
	c, ok := Classify(models.Transport, 20000, 60000, models.Tier1)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(c.Message, "Use metro/local trains instead of cabs. Monthly passes save 40-50%. Carpool via apps."))

	c, ok = Classify(models.Transport, 20000, 60000, models.Tier3)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(c.Message, "avoid solo cabs"))
}

func TestClassifyUnknownTierFallsBack(t *testing.T) {
	c, ok := Classify(models.Rent, 12000, 60000, "Tier 9")
	require.True(t, ok)
	assert.Equal(t, 28.0, c.RecommendedPercent)
	assert.Contains(t, c.Message, "recommendation for Tier 9")
}
