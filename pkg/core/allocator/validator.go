package allocator

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is wrapped by every error returned from ValidateInput
var ErrInvalidInput = errors.New("invalid allocation input")

// ValidateInput checks the pools and patients for values the engine cannot allocate against.
// Negative capacities, negative needs, negative severity and negative or non-finite survival
// scores are rejected. All problems are reported together; nil means the input is well-formed.
func ValidateInput(patients []Patient, pools ResourcePools) error {
	var errs []error

	for _, kind := range resourceKinds {
		if total := pools.Total(kind); total < 0 {
			errs = append(errs, fmt.Errorf("%w: %s capacity must be non-negative, got %d", ErrInvalidInput, kind, total))
		}
	}

	for i, p := range patients {
		label := patientLabel(i, p)

		if p.Severity < 0 {
			errs = append(errs, fmt.Errorf("%w: %s: severity must be non-negative, got %d", ErrInvalidInput, label, p.Severity))
		}
		if math.IsNaN(p.Survival) || math.IsInf(p.Survival, 0) {
			errs = append(errs, fmt.Errorf("%w: %s: survival must be a finite number", ErrInvalidInput, label))
		} else if p.Survival < 0 {
			errs = append(errs, fmt.Errorf("%w: %s: survival must be non-negative, got %g", ErrInvalidInput, label, p.Survival))
		}
		if p.BedsNeeded < 0 {
			errs = append(errs, fmt.Errorf("%w: %s: beds needed must be non-negative, got %d", ErrInvalidInput, label, p.BedsNeeded))
		}
		if p.VentilatorsNeeded < 0 {
			errs = append(errs, fmt.Errorf("%w: %s: ventilators needed must be non-negative, got %d", ErrInvalidInput, label, p.VentilatorsNeeded))
		}
	}

	return errors.Join(errs...)
}

// patientLabel identifies a patient in error messages
func patientLabel(index int, p Patient) string {
	switch {
	case p.ID != "":
		return fmt.Sprintf("patient %s", p.ID)
	case p.Name != "":
		return fmt.Sprintf("patient[%d] %q", index, p.Name)
	default:
		return fmt.Sprintf("patient[%d]", index)
	}
}
