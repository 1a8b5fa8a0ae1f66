// Package guidance holds the recommended share of income per expense
// category for each city tier, and the savings tip shown when a category
// runs well over it.
package guidance

import "fincast/internal/models"

// Recommendations maps city tier to category to percent of income
var Recommendations = map[string]map[string]float64{
	models.Tier1: {
		models.Rent: 35, models.Transport: 12, models.EatingOut: 6, models.Groceries: 12,
		models.Utilities: 6, models.Entertainment: 6, models.LoanRepayment: 10, models.Insurance: 5,
		models.Healthcare: 5, models.Education: 5, models.Miscellaneous: 5,
	},
	models.Tier2: {
		models.Rent: 28, models.Transport: 10, models.EatingOut: 5, models.Groceries: 10,
		models.Utilities: 5, models.Entertainment: 5, models.LoanRepayment: 10, models.Insurance: 5,
		models.Healthcare: 5, models.Education: 5, models.Miscellaneous: 5,
	},
	models.Tier3: {
		models.Rent: 20, models.Transport: 7, models.EatingOut: 4, models.Groceries: 8,
		models.Utilities: 4, models.Entertainment: 4, models.LoanRepayment: 10, models.Insurance: 5,
		models.Healthcare: 5, models.Education: 5, models.Miscellaneous: 5,
	},
}

// ForTier returns the table for tier, falling back to the default tier
func ForTier(tier string) map[string]float64 {
	if t, ok := Recommendations[tier]; ok {
		return t
	}
	return Recommendations[models.DefaultCityTier]
}

// RecommendedPercent looks up the recommended share for a category
func RecommendedPercent(tier, category string) (float64, bool) {
	pct, ok := ForTier(tier)[category]
	return pct, ok
}

// DefaultAdvice is shown for categories without a specific tip
const DefaultAdvice = "Consider reducing this expense category"

type tip struct {
	metro string // Tier 1 cities
	other string
}

var advice = map[string]tip{
	models.Rent: {
		metro: "Consider suburbs, co-living, or roommates in metro areas",
		other: "Consider relocating to cheaper areas or finding roommates",
	},
	models.LoanRepayment: {
		other: "High debt burden. Consider debt consolidation, balance transfer, or longer tenure to reduce EMI.",
	},
	models.Insurance: {
		other: "Review your policies. You may be over-insured (high premiums) or under-insured (inadequate coverage).",
	},
	models.Groceries: {
		metro: "Shop at wholesale markets (D-Mart, Metro), use shopping lists, buy in bulk, reduce food waste",
		other: "Buy seasonal produce, local markets cheaper than supermarkets, reduce packaged foods",
	},
	models.Transport: {
		metro: "Use metro/local trains instead of cabs. Monthly passes save 40-50%. Carpool via apps.",
		other: "Use public transport, carpool with colleagues, bike for short distances, avoid solo cabs",
	},
	models.EatingOut: {
		metro: "Meal prep at home saves 50-70%. Office lunches = ₹200-300/day waste. Cook bulk on weekends.",
		other: "Home cooking saves 60-80%. Limit restaurants to 1-2x/month. Pack office lunch.",
	},
	models.Entertainment: {
		metro: "Free city events, parks, museums on discount days. Shared OTT subscriptions. Cancel unused memberships.",
		other: "Explore free local activities, community events, libraries. Cancel unused streaming services.",
	},
	models.Utilities: {
		metro: "AC optimization saves ₹1000-2000/month. LED lights, unplug devices, 5-star rated appliances.",
		other: "LED bulbs save 75% electricity. Optimize geyser usage. Unplug chargers. Check for leaks.",
	},
	models.Healthcare: {
		other: "Review health insurance adequacy. Preventive care saves lakhs later. Generic medicines 50-80% cheaper.",
	},
	models.Education: {
		other: "Explore online courses (Coursera, Udemy 90% off sales), scholarships, employer reimbursement programs.",
	},
	models.Miscellaneous: {
		other: "Track ALL expenses for 1 month - identify impulse buys. 24-hour rule for purchases >₹1000. Cut subscriptions.",
	},
}

// Advice returns the savings tip for a category in a city tier
func Advice(category, tier string) string {
	t, ok := advice[category]
	if !ok {
		return DefaultAdvice
	}
	if tier == models.Tier1 && t.metro != "" {
		return t.metro
	}
	return t.other
}
