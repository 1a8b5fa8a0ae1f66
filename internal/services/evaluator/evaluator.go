// Package evaluator grades an expense amount against the recommended share
// of income for the household's city tier.
package evaluator

import (
	"fmt"
	"strconv"

	"fincast/internal/models"
	"fincast/internal/services/guidance"
	"fincast/internal/services/metrics"
)

const (
	// HighFactor is the multiple of the recommendation from which an
	// expense is graded high
	HighFactor = 1.3
	// ModerateFactor is the multiple above which an expense is moderate
	ModerateFactor = 1.1
)

// Classify grades amount for category. Thresholds are compared in whole
// paise so a typed amount of exactly 1.3x is high. ok is false when there is
// nothing to show: income or amount is zero, or the category has no
// recommendation.
func Classify(category string, amount, income float64, cityTier string) (c models.Classification, ok bool) {
	if income == 0 || amount == 0 {
		return c, false
	}

	recPct, found := guidance.RecommendedPercent(cityTier, category)
	if !found {
		return c, false
	}

	recommended := metrics.AmountForShare(income, recPct)
	pct := metrics.ShareOfIncome(amount, income)
	excess := amount - recommended

	c = models.Classification{
		Category:           category,
		Percentage:         pct,
		RecommendedPercent: recPct,
		RecommendedAmount:  recommended,
		Excess:             excess,
	}

	paise := metrics.Round(amount, 2)
	switch {
	case paise >= metrics.Round(recommended*HighFactor, 2):
		c.Status = models.StatusHigh
		c.Message = fmt.Sprintf("⚠️ HIGH: %s%% of income (Recommended: %s%%). Save ₹%s/month. %s",
			fixed(pct, 1), plain(recPct), fixed(excess, 0), guidance.Advice(category, cityTier))
	case paise > metrics.Round(recommended*ModerateFactor, 2):
		c.Status = models.StatusModerate
		c.Message = fmt.Sprintf("⚠️ MODERATE: %s%% of income (Recommended: %s%%). Can save ₹%s/month.",
			fixed(pct, 1), plain(recPct), fixed(excess, 0))
	default:
		c.Status = models.StatusGood
		c.Message = fmt.Sprintf("✓ GOOD: %s%% of income (within %s%% recommendation for %s)",
			fixed(pct, 1), plain(recPct), cityTier)
	}

	return c, true
}

// fixed formats v with the given decimals, rounding halves away from zero
func fixed(v float64, decimals int) string {
	return strconv.FormatFloat(metrics.Round(v, decimals), 'f', decimals, 64)
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
