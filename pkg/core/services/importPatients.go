package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/ward-allocator/pkg/db"
)

// ErrInvalidImport is returned when the import file is not a JSON array of patients
var ErrInvalidImport = errors.New("invalid import file")

// ImportStore defines the database operations needed for importing patients
type ImportStore interface {
	GetPatients(ctx context.Context) ([]db.Patient, error)
	InsertPatients(ctx context.Context, patients []db.Patient) error
}

// SkippedRecord describes an import element that was not imported
type SkippedRecord struct {
	Index  int
	Reason string
}

// ImportResult contains the outcome of an import
type ImportResult struct {
	Imported []db.Patient
	Skipped  []SkippedRecord
}

// importRecord mirrors the stored layout with optional fields so missing keys can be detected
type importRecord struct {
	ID          *string  `json:"id"`
	Name        *string  `json:"name"`
	Severity    *int     `json:"severity"`
	Beds        *int     `json:"beds"`
	Vents       *int     `json:"vents"`
	Survival    *float64 `json:"survival"`
	NeedsDoctor *bool    `json:"needsDoctor"`
}

// missingFields lists the required keys absent from the record
func (r importRecord) missingFields() []string {
	var missing []string
	if r.Name == nil || strings.TrimSpace(*r.Name) == "" {
		missing = append(missing, "name")
	}
	if r.Severity == nil {
		missing = append(missing, "severity")
	}
	if r.Beds == nil {
		missing = append(missing, "beds")
	}
	if r.Vents == nil {
		missing = append(missing, "vents")
	}
	if r.Survival == nil {
		missing = append(missing, "survival")
	}
	return missing
}

// ImportPatients appends the patients in a JSON array document to the store.
// A document that is not a JSON array is rejected as a whole. Elements that are missing
// required fields or fail validation are skipped and reported. Elements without an ID, or
// whose ID is already in use, receive a new one.
func ImportPatients(ctx context.Context, database ImportStore, logger *zap.Logger, data []byte) (*ImportResult, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrInvalidImport)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of patients: %w", ErrInvalidImport, err)
	}
	if elements == nil {
		return nil, fmt.Errorf("%w: expected a JSON array of patients", ErrInvalidImport)
	}

	logger.Debug("Parsed import file", zap.Int("elements", len(elements)))

	existing, err := database.GetPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patients: %w", err)
	}

	usedIDs := make(map[string]bool, len(existing))
	for _, p := range existing {
		usedIDs[p.ID] = true
	}

	result := &ImportResult{
		Imported: []db.Patient{},
		Skipped:  []SkippedRecord{},
	}

	for i, raw := range elements {
		var record importRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			result.Skipped = append(result.Skipped, SkippedRecord{Index: i, Reason: "not a patient object"})
			continue
		}

		if missing := record.missingFields(); len(missing) > 0 {
			result.Skipped = append(result.Skipped, SkippedRecord{
				Index:  i,
				Reason: "missing " + strings.Join(missing, ", "),
			})
			continue
		}

		patient := db.Patient{
			Name:     strings.TrimSpace(*record.Name),
			Severity: *record.Severity,
			Beds:     *record.Beds,
			Vents:    *record.Vents,
			Survival: *record.Survival,
		}
		if record.NeedsDoctor != nil {
			patient.NeedsDoctor = *record.NeedsDoctor
		}
		if record.ID != nil && *record.ID != "" && !usedIDs[*record.ID] {
			patient.ID = *record.ID
		} else {
			patient.ID = uuid.New().String()
		}

		if err := db.ValidatePatient(&patient); err != nil {
			result.Skipped = append(result.Skipped, SkippedRecord{Index: i, Reason: err.Error()})
			continue
		}

		usedIDs[patient.ID] = true
		result.Imported = append(result.Imported, patient)
	}

	for _, skipped := range result.Skipped {
		logger.Debug("Skipped import element", zap.Int("index", skipped.Index), zap.String("reason", skipped.Reason))
	}

	if err := database.InsertPatients(ctx, result.Imported); err != nil {
		return nil, fmt.Errorf("failed to insert imported patients: %w", err)
	}

	logger.Info("Patients imported",
		zap.Int("imported", len(result.Imported)),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}
