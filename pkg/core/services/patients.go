package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/ward-allocator/pkg/db"
)

// ErrInvalidPatient is wrapped when patient fields fail validation
var ErrInvalidPatient = errors.New("invalid patient")

// PatientInput holds the fields supplied when adding a patient
type PatientInput struct {
	Name        string
	Severity    int
	Beds        int
	Vents       int
	Survival    float64
	NeedsDoctor bool
}

// PatientUpdate holds the fields to change on an existing patient.
// Nil fields are left unchanged.
type PatientUpdate struct {
	Name        *string
	Severity    *int
	Beds        *int
	Vents       *int
	Survival    *float64
	NeedsDoctor *bool
}

// IsEmpty reports whether the update changes nothing
func (u PatientUpdate) IsEmpty() bool {
	return u.Name == nil && u.Severity == nil && u.Beds == nil &&
		u.Vents == nil && u.Survival == nil && u.NeedsDoctor == nil
}

// PatientWriter defines the database operations needed for adding patients
type PatientWriter interface {
	InsertPatients(ctx context.Context, patients []db.Patient) error
}

// AddPatient validates the input, assigns a new ID and stores the patient
func AddPatient(ctx context.Context, database PatientWriter, logger *zap.Logger, input PatientInput) (*db.Patient, error) {
	patient := &db.Patient{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(input.Name),
		Severity:    input.Severity,
		Beds:        input.Beds,
		Vents:       input.Vents,
		Survival:    input.Survival,
		NeedsDoctor: input.NeedsDoctor,
	}

	if err := db.ValidatePatient(patient); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPatient, err)
	}

	logger.Debug("Adding patient",
		zap.String("id", patient.ID),
		zap.String("name", patient.Name),
		zap.Int("severity", patient.Severity),
		zap.Float64("survival", patient.Survival))

	if err := database.InsertPatients(ctx, []db.Patient{*patient}); err != nil {
		return nil, fmt.Errorf("failed to insert patient: %w", err)
	}

	logger.Info("Patient added", zap.String("id", patient.ID), zap.String("name", patient.Name))

	return patient, nil
}

// UpdatePatientStore defines the database operations needed for updating a patient
type UpdatePatientStore interface {
	GetPatient(ctx context.Context, id string) (*db.Patient, error)
	UpdatePatient(ctx context.Context, patient *db.Patient) error
}

// UpdatePatient applies the non-nil fields of update to the patient with the given ID.
// The patient keeps its ID and its position in the list.
func UpdatePatient(ctx context.Context, database UpdatePatientStore, logger *zap.Logger, id string, update PatientUpdate) (*db.Patient, error) {
	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidPatient)
	}

	patient, err := database.GetPatient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}

	if update.Name != nil {
		patient.Name = strings.TrimSpace(*update.Name)
	}
	if update.Severity != nil {
		patient.Severity = *update.Severity
	}
	if update.Beds != nil {
		patient.Beds = *update.Beds
	}
	if update.Vents != nil {
		patient.Vents = *update.Vents
	}
	if update.Survival != nil {
		patient.Survival = *update.Survival
	}
	if update.NeedsDoctor != nil {
		patient.NeedsDoctor = *update.NeedsDoctor
	}

	if err := db.ValidatePatient(patient); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPatient, err)
	}

	if err := database.UpdatePatient(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	logger.Info("Patient updated", zap.String("id", patient.ID), zap.String("name", patient.Name))

	return patient, nil
}

// PatientDeleter defines the database operations needed for removing patients
type PatientDeleter interface {
	DeletePatient(ctx context.Context, id string) error
	ClearPatients(ctx context.Context) error
}

// DeletePatient removes a single patient
func DeletePatient(ctx context.Context, database PatientDeleter, logger *zap.Logger, id string) error {
	if err := database.DeletePatient(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	logger.Info("Patient deleted", zap.String("id", id))
	return nil
}

// ClearPatients removes every stored patient
func ClearPatients(ctx context.Context, database PatientDeleter, logger *zap.Logger) error {
	if err := database.ClearPatients(ctx); err != nil {
		return fmt.Errorf("failed to clear patients: %w", err)
	}

	logger.Info("All patient data cleared")
	return nil
}

// ListPatients returns all patients in insertion order
func ListPatients(ctx context.Context, database db.PatientReader, logger *zap.Logger) ([]db.Patient, error) {
	logger.Debug("Fetching patients")
	patients, err := database.GetPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patients: %w", err)
	}
	logger.Debug("Found patients", zap.Int("count", len(patients)))

	return patients, nil
}
