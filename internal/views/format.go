// Package views turns backend results into display-ready values for the
// templates. Nothing here touches HTTP or the DOM.
package views

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"fincast/internal/models"
)

var indian = language.MustParse("en-IN")

// Grouped formats v with Indian digit grouping (1,00,000) and at most
// maxFrac fraction digits.
func Grouped(v float64, maxFrac int) string {
	p := message.NewPrinter(indian)
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(maxFrac)))
}

// Amount formats a rupee amount the way the result panels show it
func Amount(v float64) string {
	return Grouped(v, 3)
}

// Whole formats a rupee amount without fraction digits
func Whole(v float64) string {
	return Grouped(v, 0)
}

// Plain prints a number with no grouping and no trailing zeros
func Plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// truthy mirrors how the browser treats optional JSON values: nil, zero,
// false and "" are absent.
func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case float64:
		return val != 0
	case string:
		return val != ""
	case bool:
		return val
	default:
		return true
	}
}

// ProfileSummary is the one-line description of the sample profile, or ""
// when there is no profile.
func ProfileSummary(p models.Profile) string {
	if p == nil {
		return ""
	}

	var pieces []string
	if income, ok := p.Number(models.FieldIncome); ok {
		pieces = append(pieces, "Income ₹"+Whole(income))
	}
	if p.Has(models.FieldAge) {
		pieces = append(pieces, "Age "+models.FieldValue(p[models.FieldAge]))
	}
	if p.Has(models.FieldDependents) {
		pieces = append(pieces, "Dependents "+models.FieldValue(p[models.FieldDependents]))
	}
	if tier := p[models.FieldCityTier]; truthy(tier) {
		pieces = append(pieces, models.FieldValue(tier))
	}
	return "Sample Data: " + strings.Join(pieces, " • ")
}
