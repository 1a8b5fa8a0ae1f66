// Package payload turns a submitted profile form into the JSON body the
// prediction backend expects.
package payload

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"fincast/internal/models"
)

// NumericFields are sent as numbers; every other field is sent as text
var NumericFields = []string{
	models.FieldIncome,
	models.FieldAge,
	models.FieldDependents,
	models.FieldTotalExpenses,
	models.FieldDesiredSavings,
	models.FieldDisposableIncome,
	models.Rent,
	models.LoanRepayment,
	models.Insurance,
	models.Groceries,
	models.Transport,
	models.EatingOut,
	models.Entertainment,
	models.Utilities,
	models.Healthcare,
	models.Education,
	models.Miscellaneous,
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber reads the leading number of s, ignoring surrounding
// whitespace and any trailing text. Anything unparsable is 0.
func ParseNumber(s string) float64 {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// IsNumeric reports whether field is sent as a number
func IsNumeric(field string) bool {
	for _, f := range NumericFields {
		if f == field {
			return true
		}
	}
	return false
}

// Build collects every submitted field. Numeric fields that are present are
// coerced with ParseNumber; the first value wins for repeated keys.
func Build(form url.Values) map[string]interface{} {
	out := make(map[string]interface{}, len(form))
	for key, values := range form {
		v := ""
		if len(values) > 0 {
			v = values[0]
		}
		if IsNumeric(key) {
			out[key] = ParseNumber(v)
			continue
		}
		out[key] = v
	}
	return out
}
