package payload

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"60000", 60000},
		{"  42.5 ", 42.5},
		{"12abc", 12},
		{"-3", -3},
		{".5", 0.5},
		{"1e3", 1000},
		{"1e", 1},
		{"7.", 7},
		{"Infinity", 0},
		{"1e400", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumber(tt.in))
		})
	}
}

func TestBuild(t *testing.T) {
	form := url.Values{
		"Income":     {"60000"},
		"Age":        {""},
		"Rent":       {"15000abc"},
		"Occupation": {"Professional"},
		"City_Tier":  {"Tier 1"},
		"Extra":      {"x", "y"},
	}

	got := Build(form)
	assert.Equal(t, 60000.0, got["Income"])
	assert.Equal(t, 0.0, got["Age"])
	assert.Equal(t, 15000.0, got["Rent"])
	assert.Equal(t, "Professional", got["Occupation"])
	assert.Equal(t, "Tier 1", got["City_Tier"])
	assert.Equal(t, "x", got["Extra"])

	// Numeric fields are only coerced when submitted
	assert.NotContains(t, got, "Groceries")
	assert.Len(t, got, len(form))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("Disposable_Income"))
	assert.True(t, IsNumeric("Eating_Out"))
	assert.False(t, IsNumeric("Occupation"))
	assert.False(t, IsNumeric("City_Tier"))
}
