package views

import (
	"fmt"
	"strconv"

	"fincast/internal/models"
	"fincast/internal/services/charts"
	"fincast/internal/services/classifier"
)

// Prediction is everything the prediction partial renders
type Prediction struct {
	// Error replaces the whole result when set
	Error string

	Predicted   string
	Desired     string
	Shortfall   string
	Probability string
	Runtime     string

	// Charts are only filled on pages that show charts
	Charts []charts.Rendered
	// InsightsSet means the insights list is replaced by Insights
	InsightsSet bool
	Insights    []string

	Breakdown       *Breakdown
	Recommendations []classifier.Line
	// ShowRecommendations is true when the backend sent any lines, even if
	// they were all separators
	ShowRecommendations bool
}

// ShowShortfall reports whether the shortfall warning is shown
func (p Prediction) ShowShortfall() bool {
	return p.Shortfall != "" && p.Desired != ""
}

// PredictionFailed builds the view for a failed prediction
func PredictionFailed(msg string) Prediction {
	if msg == "" {
		msg = "An error occurred"
	}
	return Prediction{Error: msg}
}

// TimeoutMessage is shown when a prediction hits its deadline
func TimeoutMessage(seconds int) string {
	return fmt.Sprintf("Prediction timed out after %d seconds. Ensure the prediction backend is running.", seconds)
}

// NewPrediction builds the view of a successful prediction. withCharts is
// false on pages without chart panels.
func NewPrediction(r *models.PredictionResult, withCharts bool) Prediction {
	if r == nil {
		return PredictionFailed("")
	}
	if r.Error != "" {
		return PredictionFailed(r.Error)
	}

	v := Prediction{
		Predicted:   "N/A",
		Probability: "N/A",
	}
	if r.PredictedDesiredSavings != nil && *r.PredictedDesiredSavings != 0 {
		v.Predicted = Amount(*r.PredictedDesiredSavings)
	}
	if r.DesiredSavingsAmount != nil && *r.DesiredSavingsAmount != 0 {
		v.Desired = Amount(*r.DesiredSavingsAmount)
	}
	if r.Shortfall != nil && *r.Shortfall > 0 {
		v.Shortfall = Amount(*r.Shortfall)
	}
	if r.OverspendProbability != nil {
		v.Probability = strconv.FormatFloat(*r.OverspendProbability*100, 'f', 1, 64) + "%"
	}
	if r.ElapsedMS != 0 {
		v.Runtime = "Notebook runtime: " + Plain(r.ElapsedMS) + " ms"
	}

	if withCharts && r.Charts != nil {
		v.Charts = charts.Render(r.Charts)
	}
	if r.Insights != nil {
		v.InsightsSet = true
		v.Insights = r.Insights
	}
	v.Breakdown = NewBreakdown(r.ExpenseBreakdown)
	if len(r.Recommendations) > 0 {
		v.ShowRecommendations = true
		v.Recommendations = classifier.ClassifyLines(r.Recommendations)
	}
	return v
}
