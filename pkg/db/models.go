package db

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/jakechorley/ward-allocator/pkg/core/allocator"
)

var (
	// ErrPatientNotFound is returned when no patient exists with the requested ID
	ErrPatientNotFound = errors.New("patient not found")

	// ErrNilPatient is returned when a nil patient is passed to a write operation
	ErrNilPatient = errors.New("patient cannot be nil")
)

// Patient represents a stored patient record.
// The JSON layout matches the exported/imported patient files.
type Patient struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required,notblank"`
	Severity    int     `json:"severity" validate:"gt=0"`
	Beds        int     `json:"beds" validate:"gte=0"`
	Vents       int     `json:"vents" validate:"gte=0"`
	Survival    float64 `json:"survival" validate:"gte=0"`
	NeedsDoctor bool    `json:"needsDoctor"`
}

// ToAllocatorPatient converts the record into allocation engine input
func (p Patient) ToAllocatorPatient() allocator.Patient {
	return allocator.Patient{
		ID:                p.ID,
		Name:              p.Name,
		Severity:          p.Severity,
		Survival:          p.Survival,
		BedsNeeded:        p.Beds,
		VentilatorsNeeded: p.Vents,
		NeedsDoctor:       p.NeedsDoctor,
	}
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("failed to register notblank validation: %v", err))
	}
}

// ValidatePatient checks the record against its field constraints
func ValidatePatient(p *Patient) error {
	if p == nil {
		return ErrNilPatient
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("patient validation failed: %w", err)
	}
	return nil
}
