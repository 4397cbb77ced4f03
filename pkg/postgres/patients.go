package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/ward-allocator/pkg/db"
)

// GetPatients retrieves all patient records in insertion order
func (d *DB) GetPatients(ctx context.Context) ([]db.Patient, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, severity, beds, vents, survival, needs_doctor
		FROM patient
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	patients := []db.Patient{}
	for rows.Next() {
		var p db.Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Severity, &p.Beds, &p.Vents, &p.Survival, &p.NeedsDoctor); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patients: %w", err)
	}

	return patients, nil
}

// GetPatient retrieves a single patient by ID
func (d *DB) GetPatient(ctx context.Context, id string) (*db.Patient, error) {
	var p db.Patient
	err := d.pool.QueryRow(ctx, `
		SELECT id, name, severity, beds, vents, survival, needs_doctor
		FROM patient
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Severity, &p.Beds, &p.Vents, &p.Survival, &p.NeedsDoctor)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", db.ErrPatientNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}

	return &p, nil
}

// InsertPatients inserts patient records in a single transaction
func (d *DB) InsertPatients(ctx context.Context, patients []db.Patient) error {
	if len(patients) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range patients {
		_, err := tx.Exec(ctx, `
			INSERT INTO patient (id, name, severity, beds, vents, survival, needs_doctor)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, p.ID, p.Name, p.Severity, p.Beds, p.Vents, p.Survival, p.NeedsDoctor)
		if err != nil {
			return fmt.Errorf("failed to insert patient %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdatePatient replaces the stored fields of the patient with the same ID
func (d *DB) UpdatePatient(ctx context.Context, patient *db.Patient) error {
	if patient == nil {
		return db.ErrNilPatient
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE patient
		SET name = $2, severity = $3, beds = $4, vents = $5, survival = $6, needs_doctor = $7
		WHERE id = $1
	`, patient.ID, patient.Name, patient.Severity, patient.Beds, patient.Vents, patient.Survival, patient.NeedsDoctor)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", db.ErrPatientNotFound, patient.ID)
	}

	return nil
}

// DeletePatient removes the patient with the given ID
func (d *DB) DeletePatient(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", db.ErrPatientNotFound, id)
	}
	return nil
}

// ClearPatients removes every patient record
func (d *DB) ClearPatients(ctx context.Context) error {
	if _, err := d.pool.Exec(ctx, `DELETE FROM patient`); err != nil {
		return fmt.Errorf("failed to clear patients: %w", err)
	}
	return nil
}
