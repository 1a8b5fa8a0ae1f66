package dashboard

import (
	"fincast/internal/models"
	"fincast/internal/services/hydrator"
	"fincast/internal/services/session"
)

// fieldView is everything the field templates need to render one control
type fieldView struct {
	Spec      models.FieldSpec
	ID        string
	WarningID string
	Value     string
	Options   []hydrator.Option
	Expense   bool
	// Trigger is the hx-trigger of the control, empty for none
	Trigger string
	EvalURL string
	// OOB marks a control sent as an out-of-band replacement
	OOB bool
}

func newFieldView(p *session.Page, f models.FormSpec, fs models.FieldSpec, value string) fieldView {
	fv := fieldView{
		Spec:    fs,
		ID:      f.ElementID(fs.Name),
		Value:   value,
		Expense: models.IsExpenseCategory(fs.Name),
		EvalURL: "/pages/" + p.ID + "/forms/" + f.ID + "/evaluate",
	}
	if fv.Expense {
		fv.WarningID = f.WarningID(fs.Name)
	}

	switch {
	case fv.Expense:
		fv.Trigger = "input, blur"
	case fs.Name == models.FieldIncome, fs.Name == models.FieldTotalExpenses:
		fv.Trigger = "input"
	case fs.Name == models.FieldCityTier:
		fv.Trigger = "change"
	}
	return fv
}

func initialOptions(values []string) []hydrator.Option {
	out := make([]hydrator.Option, 0, len(values))
	for i, v := range values {
		out = append(out, hydrator.Option{Value: v, Selected: i == 0})
	}
	return out
}
