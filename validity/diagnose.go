package validity

import (
	"github.com/spnforge/spngen/petri"
	"github.com/spnforge/spngen/spn"
	"github.com/spnforge/spngen/validation"
)

// Diagnose runs the general-purpose structural checks (empty net, negative
// markings, disconnected components, non-positive arc weights, token
// conservation) against a rejected or accepted candidate, giving an
// operator a human-readable explanation beyond Outcome.Reason's one-line
// summary. It converts m through petri.FromMatrix and delegates to
// validation.Validator, which operates on the general PetriNet model.
func Diagnose(m *spn.Matrix) *validation.ValidationResult {
	net := petri.FromMatrix(m)
	return validation.NewValidator(net).Validate()
}
