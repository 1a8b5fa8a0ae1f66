package models

// Expense categories, named as the form fields that carry them
const (
	Rent          = "Rent"
	LoanRepayment = "Loan_Repayment"
	Insurance     = "Insurance"
	Groceries     = "Groceries"
	Transport     = "Transport"
	EatingOut     = "Eating_Out"
	Entertainment = "Entertainment"
	Utilities     = "Utilities"
	Healthcare    = "Healthcare"
	Education     = "Education"
	Miscellaneous = "Miscellaneous"
)

// ExpenseCategories lists the categories in form order
var ExpenseCategories = []string{
	Rent, LoanRepayment, Insurance, Groceries, Transport, EatingOut,
	Entertainment, Utilities, Healthcare, Education, Miscellaneous,
}

// IsExpenseCategory reports whether name is one of ExpenseCategories
func IsExpenseCategory(name string) bool {
	for _, c := range ExpenseCategories {
		if c == name {
			return true
		}
	}
	return false
}

// City tiers
const (
	Tier1 = "Tier 1"
	Tier2 = "Tier 2"
	Tier3 = "Tier 3"
)

// DefaultCityTier is used when the tier is unknown or not on the form
const DefaultCityTier = Tier2

// ExpenseStatus grades an expense against its recommendation
type ExpenseStatus string

const (
	StatusGood     ExpenseStatus = "good"
	StatusModerate ExpenseStatus = "moderate"
	StatusHigh     ExpenseStatus = "high"
)

// Icon is the marker shown next to a warning of this status
func (s ExpenseStatus) Icon() string {
	switch s {
	case StatusHigh:
		return "🔴"
	case StatusModerate:
		return "🟡"
	default:
		return "🟢"
	}
}

// Classification is the evaluated state of one expense field
type Classification struct {
	Category           string        `json:"category"`
	Status             ExpenseStatus `json:"status"`
	Message            string        `json:"message"`
	Percentage         float64       `json:"percentage"`
	RecommendedPercent float64       `json:"recommended_percent"`
	RecommendedAmount  float64       `json:"recommended_amount"`
	Excess             float64       `json:"excess"`
}
