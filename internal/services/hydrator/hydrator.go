// Package hydrator fills page forms from the backend's sample profile and
// rebuilds the occupation and city tier dropdowns.
package hydrator

import (
	"sync"

	"fincast/internal/models"
)

// State is the hydration state of a page
type State int

const (
	Unhydrated State = iota
	Hydrated
)

func (s State) String() string {
	if s == Hydrated {
		return "hydrated"
	}
	return "unhydrated"
}

// Latch allows a single transition from Unhydrated to Hydrated
type Latch struct {
	mu    sync.Mutex
	state State
}

// State returns the current state
func (l *Latch) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Fire moves the latch to Hydrated. It returns true only for the call that
// made the transition.
func (l *Latch) Fire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == Hydrated {
		return false
	}
	l.state = Hydrated
	return true
}

// Option is one entry of a select
type Option struct {
	Value    string
	Selected bool
}

// Select is the full state of a select element after population
type Select struct {
	FormID  string
	Field   models.FieldSpec
	Options []Option
}

// Assignment sets the value of a non-select field
type Assignment struct {
	FormID string
	Field  models.FieldSpec
	Value  string
}

// Result is what a snapshot load changes on the page's forms
type Result struct {
	Selects     []Select
	Assignments []Assignment
	Hydrated    bool
}

// Populate rebuilds every occupation and city tier select on forms from
// options, first option selected. A nil options leaves selects alone.
func Populate(forms []models.FormSpec, options *models.Options) []Select {
	if options == nil {
		return nil
	}

	var out []Select
	for _, f := range forms {
		for _, fs := range f.Fields {
			if fs.Kind != models.FieldSelect {
				continue
			}
			var labels []string
			switch fs.Name {
			case models.FieldOccupation:
				labels = options.Occupations
			case models.FieldCityTier:
				labels = options.CityTiers
			default:
				continue
			}
			sel := Select{FormID: f.ID, Field: fs}
			for i, label := range labels {
				sel.Options = append(sel.Options, Option{Value: label, Selected: i == 0})
			}
			out = append(out, sel)
		}
	}
	return out
}

// Apply populates selects and, when the latch fires, copies profile values
// onto the forms. Non-select fields take the profile value verbatim; the
// occupation and city tier selects gain the profile's value as an option if
// missing and select it. A page without forms never fires the latch.
func Apply(latch *Latch, forms []models.FormSpec, options *models.Options, profile models.Profile) Result {
	res := Result{Selects: Populate(forms, options)}

	if profile == nil || len(forms) == 0 || !latch.Fire() {
		return res
	}
	res.Hydrated = true

	for _, f := range forms {
		for _, fs := range f.Fields {
			if fs.Kind == models.FieldSelect || !profile.Has(fs.Name) {
				continue
			}
			res.Assignments = append(res.Assignments, Assignment{
				FormID: f.ID,
				Field:  fs,
				Value:  models.FieldValue(profile[fs.Name]),
			})
		}

		for _, name := range []string{models.FieldOccupation, models.FieldCityTier} {
			value := profile.Text(name)
			fs, ok := f.Field(name)
			if value == "" || !ok || fs.Kind != models.FieldSelect {
				continue
			}
			res.Selects = selectValue(res.Selects, f.ID, fs, value)
		}
	}
	return res
}

// selectValue marks value as the selected option of a form's select,
// appending it when missing. A select that was not repopulated starts from
// the options it was rendered with.
func selectValue(selects []Select, formID string, fs models.FieldSpec, value string) []Select {
	idx := -1
	for i := range selects {
		if selects[i].FormID == formID && selects[i].Field.Name == fs.Name {
			idx = i
			break
		}
	}
	if idx < 0 {
		sel := Select{FormID: formID, Field: fs}
		for _, o := range fs.Options {
			sel.Options = append(sel.Options, Option{Value: o})
		}
		selects = append(selects, sel)
		idx = len(selects) - 1
	}

	sel := &selects[idx]
	found := false
	for i := range sel.Options {
		sel.Options[i].Selected = sel.Options[i].Value == value
		if sel.Options[i].Selected {
			found = true
		}
	}
	if !found {
		sel.Options = append(sel.Options, Option{Value: value, Selected: true})
	}
	return selects
}
