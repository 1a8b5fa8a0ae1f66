package models

// Profile and form field names shared with the prediction backend
const (
	FieldIncome           = "Income"
	FieldAge              = "Age"
	FieldDependents       = "Dependents"
	FieldOccupation       = "Occupation"
	FieldCityTier         = "City_Tier"
	FieldTotalExpenses    = "Total_Expenses"
	FieldDesiredSavings   = "Desired_Savings_Percentage"
	FieldDisposableIncome = "Disposable_Income"
)

// DefaultOccupations are offered until the backend sends its own list
var DefaultOccupations = []string{"Salaried", "Professional", "Student", "Self_Employed"}

// CityTiers are the known cost-of-living brackets
var CityTiers = []string{Tier1, Tier2, Tier3}

// PageKind identifies which page layout a page context renders
type PageKind string

const (
	PageDashboard PageKind = "dashboard"
	PageInput     PageKind = "input"
)

// FieldKind is how a form field is rendered
type FieldKind string

const (
	FieldNumber FieldKind = "number"
	FieldText   FieldKind = "text"
	FieldSelect FieldKind = "select"
)

// FieldSpec describes one field of a profile form
type FieldSpec struct {
	Name     string
	Label    string
	Kind     FieldKind
	ReadOnly bool
	// SelectID is the element id of a select field
	SelectID string
	// Options a select is rendered with before any snapshot arrives
	Options []string
}

// FormSpec describes a profile form rendered on a page
type FormSpec struct {
	ID     string
	Fields []FieldSpec
}

// Field returns the field named name
func (f FormSpec) Field(name string) (FieldSpec, bool) {
	for _, fs := range f.Fields {
		if fs.Name == name {
			return fs, true
		}
	}
	return FieldSpec{}, false
}

// ElementID is the DOM id of a field input within this form
func (f FormSpec) ElementID(field string) string {
	if fs, ok := f.Field(field); ok && fs.SelectID != "" {
		return fs.SelectID
	}
	return f.ID + "-" + field
}

// WarningID is the DOM id of the warning slot under an expense field
func (f FormSpec) WarningID(field string) string {
	return f.ID + "-" + field + "-warning"
}

// ProfileForm builds the profile form layout. suffix distinguishes element
// ids of the input page ("-alt") from the dashboard's.
func ProfileForm(id, suffix string) FormSpec {
	fields := []FieldSpec{
		{Name: FieldIncome, Label: "Monthly Income (₹)", Kind: FieldNumber},
		{Name: FieldAge, Label: "Age", Kind: FieldNumber},
		{Name: FieldDependents, Label: "Dependents", Kind: FieldNumber},
		{Name: FieldOccupation, Label: "Occupation", Kind: FieldSelect, SelectID: "occupation-select" + suffix, Options: DefaultOccupations},
		{Name: FieldCityTier, Label: "City Tier", Kind: FieldSelect, SelectID: "city-select" + suffix, Options: CityTiers},
		{Name: FieldTotalExpenses, Label: "Total Expenses (₹)", Kind: FieldNumber},
		{Name: FieldDesiredSavings, Label: "Desired Savings (%)", Kind: FieldNumber},
		{Name: FieldDisposableIncome, Label: "Disposable Income (₹)", Kind: FieldNumber, ReadOnly: true},
	}
	for _, c := range ExpenseCategories {
		fields = append(fields, FieldSpec{Name: c, Label: categoryLabel(c) + " (₹)", Kind: FieldNumber})
	}
	return FormSpec{ID: id, Fields: fields}
}

func categoryLabel(c string) string {
	b := []byte(c)
	for i := range b {
		if b[i] == '_' {
			b[i] = ' '
		}
	}
	return string(b)
}
