// Package onboarding models the 4-step profile-completion wizard as a
// plain state machine: a current step plus the accumulated form, with no
// rendering concern attached.
package onboarding

type Step int

const (
	FirstStep Step = 1
	LastStep  Step = 4
)

// Form is the role-specific accumulated form state. ValidateStep reports
// the required fields of that step that are still blank; it checks
// non-emptiness only (plus at least one selection on multi-select steps),
// never formats.
type Form interface {
	ValidateStep(step Step) (missing []string)
}

// Wizard is a linear 4-step machine: forward only through Next (gated by
// the current step's validation), backward unconditionally through
// Previous, bounded at step 1.
type Wizard struct {
	Step Step
	Form Form
}

func New(f Form) *Wizard {
	return &Wizard{Step: FirstStep, Form: f}
}

// Resume restores a wizard at a previously reached step, clamped into
// [FirstStep, LastStep].
func Resume(f Form, step Step) *Wizard {
	if step < FirstStep {
		step = FirstStep
	}
	if step > LastStep {
		step = LastStep
	}
	return &Wizard{Step: step, Form: f}
}

// Next advances one step if the current step validates. It returns the
// missing fields that blocked the move, nil when the move happened (or
// when already on the last step).
func (w *Wizard) Next() []string {
	if missing := w.Form.ValidateStep(w.Step); len(missing) > 0 {
		return missing
	}
	if w.Step < LastStep {
		w.Step++
	}
	return nil
}

func (w *Wizard) Previous() {
	if w.Step > FirstStep {
		w.Step--
	}
}

// Complete validates every step; an empty result means the form can be
// submitted and the profile marked completed.
func (w *Wizard) Complete() []string {
	var missing []string
	for s := FirstStep; s <= LastStep; s++ {
		missing = append(missing, w.Form.ValidateStep(s)...)
	}
	return missing
}

// FirstIncompleteStep is where a returning user re-enters the wizard:
// the earliest step whose required fields are not all filled.
func FirstIncompleteStep(f Form) Step {
	for s := FirstStep; s <= LastStep; s++ {
		if len(f.ValidateStep(s)) > 0 {
			return s
		}
	}
	return LastStep
}
