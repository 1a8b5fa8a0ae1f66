package views

import (
	"fincast/internal/models"
	"fincast/internal/services/classifier"
	"fincast/internal/services/metrics"
)

// Breakdown is the expense breakdown panel
type Breakdown struct {
	Summary         string
	AnnualPotential string
	Categories      []Category
}

// Category is one card of the breakdown panel
type Category struct {
	Name            string
	Status          string
	StatusClass     string
	Current         string
	Recommended     string
	AverageLabel    string
	Average         string
	PotentialSaving string
	Advice          []string
}

// NewBreakdown builds the panel, or nil when there is nothing to show
func NewBreakdown(b *models.ExpenseBreakdown) *Breakdown {
	if b == nil || len(b.Categories) == 0 {
		return nil
	}

	label := b.CityTier
	if label == "" {
		label = "City"
	}

	out := &Breakdown{Summary: b.Summary}
	if b.TotalPotentialSavings > 0 {
		out.AnnualPotential = Amount(metrics.Annualize(b.TotalPotentialSavings))
	}

	for _, c := range b.Categories {
		cat := Category{
			Name:         c.Category,
			Status:       c.Status,
			StatusClass:  classifier.StatusClass(c.Status),
			Current:      "₹" + Amount(c.CurrentAmount) + " (" + Plain(c.CurrentPercentage) + "%)",
			Recommended:  "₹" + Amount(c.RecommendedAmount) + " (" + Plain(c.RecommendedPercentage) + "%)",
			AverageLabel: label + " Average:",
			Average:      "₹" + Amount(c.CityTierAverage),
			Advice:       c.Advice,
		}
		if c.PotentialSaving > 0 {
			cat.PotentialSaving = "₹" + Amount(c.PotentialSaving) + "/month"
		}
		out.Categories = append(out.Categories, cat)
	}
	return out
}
