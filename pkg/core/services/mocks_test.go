package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/jakechorley/ward-allocator/pkg/db"
)

// mockPatientStore implements db.PatientStore in memory for testing
type mockPatientStore struct {
	patients   []db.Patient
	getErr     error
	insertErr  error
	updateErr  error
	deleteErr  error
	clearErr   error
	insertions int
}

func (m *mockPatientStore) GetPatients(ctx context.Context) ([]db.Patient, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return slices.Clone(m.patients), nil
}

func (m *mockPatientStore) GetPatient(ctx context.Context, id string) (*db.Patient, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, p := range m.patients {
		if p.ID == id {
			patient := p
			return &patient, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", db.ErrPatientNotFound, id)
}

func (m *mockPatientStore) InsertPatients(ctx context.Context, patients []db.Patient) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.insertions++
	m.patients = append(m.patients, patients...)
	return nil
}

func (m *mockPatientStore) UpdatePatient(ctx context.Context, patient *db.Patient) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i, p := range m.patients {
		if p.ID == patient.ID {
			m.patients[i] = *patient
			return nil
		}
	}
	return fmt.Errorf("%w: %s", db.ErrPatientNotFound, patient.ID)
}

func (m *mockPatientStore) DeletePatient(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, p := range m.patients {
		if p.ID == id {
			m.patients = slices.Delete(m.patients, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", db.ErrPatientNotFound, id)
}

func (m *mockPatientStore) ClearPatients(ctx context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.patients = nil
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
