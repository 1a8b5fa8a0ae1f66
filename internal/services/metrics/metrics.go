package metrics

import "math"

// Disposable returns income left after expenses, floored at zero
func Disposable(income, expenses float64) float64 {
	return math.Max(0, income-expenses)
}

// ShareOfIncome returns part as a percentage of income
func ShareOfIncome(part, income float64) float64 {
	if income == 0 {
		return 0
	}
	return (part / income) * 100
}

// AmountForShare returns the amount that makes up pct percent of income
func AmountForShare(income, pct float64) float64 {
	return income * (pct / 100)
}

// Round rounds v to the given number of decimals, halves away from zero
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// Annualize turns a monthly amount into a yearly one
func Annualize(monthly float64) float64 {
	return monthly * 12
}
