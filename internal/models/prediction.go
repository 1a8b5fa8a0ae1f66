package models

// PredictionResult is the prediction endpoint response. Optional slices stay
// nil when the backend omits them; an empty JSON array decodes to an empty,
// non-nil slice and still counts as present.
type PredictionResult struct {
	PredictedDesiredSavings *float64          `json:"predicted_desired_savings,omitempty"`
	DesiredSavingsAmount    *float64          `json:"desired_savings_amount,omitempty"`
	Shortfall               *float64          `json:"shortfall,omitempty"`
	OverspendProbability    *float64          `json:"overspend_probability,omitempty"`
	ElapsedMS               float64           `json:"elapsed_ms,omitempty"`
	Charts                  *Charts           `json:"charts,omitempty"`
	Insights                []string          `json:"insights,omitempty"`
	ExpenseBreakdown        *ExpenseBreakdown `json:"expense_breakdown,omitempty"`
	Recommendations         []string          `json:"recommendations,omitempty"`
	Error                   string            `json:"error,omitempty"`
}

// ExpenseBreakdown compares each expense category with its recommendation
type ExpenseBreakdown struct {
	Categories            []CategoryBreakdown `json:"categories"`
	CityTier              string              `json:"city_tier"`
	Summary               string              `json:"summary"`
	TotalPotentialSavings float64             `json:"total_potential_savings"`
}

// CategoryBreakdown is one category line of an ExpenseBreakdown
type CategoryBreakdown struct {
	Category              string   `json:"category"`
	Status                string   `json:"status"` // carries a 🔴/🟡/🟢 marker
	CurrentAmount         float64  `json:"current_amount"`
	CurrentPercentage     float64  `json:"current_percentage"`
	RecommendedAmount     float64  `json:"recommended_amount"`
	RecommendedPercentage float64  `json:"recommended_percentage"`
	CityTierAverage       float64  `json:"city_tier_average"`
	PotentialSaving       float64  `json:"potential_saving"`
	Advice                []string `json:"advice"`
}
