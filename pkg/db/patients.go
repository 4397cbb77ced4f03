package db

import (
	"context"
	"fmt"
	"slices"
)

// GetPatients retrieves all patient records in insertion order
func (s *FileStore) GetPatients(ctx context.Context) ([]Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patients, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get patients: %w", err)
	}
	return patients, nil
}

// GetPatient retrieves a single patient by ID
func (s *FileStore) GetPatient(ctx context.Context, id string) (*Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patients, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	idx := indexOfPatient(patients, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrPatientNotFound, id)
	}

	patient := patients[idx]
	return &patient, nil
}

// InsertPatients appends patient records to the list
func (s *FileStore) InsertPatients(ctx context.Context, newPatients []Patient) error {
	if len(newPatients) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	patients, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert patients: %w", err)
	}

	for _, p := range newPatients {
		if indexOfPatient(patients, p.ID) >= 0 {
			return fmt.Errorf("failed to insert patients: duplicate patient ID %s", p.ID)
		}
		patients = append(patients, p)
	}

	return s.save(ctx, patients)
}

// UpdatePatient replaces the stored record with the same ID, keeping its position in the list
func (s *FileStore) UpdatePatient(ctx context.Context, patient *Patient) error {
	if patient == nil {
		return ErrNilPatient
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	patients, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	idx := indexOfPatient(patients, patient.ID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPatientNotFound, patient.ID)
	}
	patients[idx] = *patient

	return s.save(ctx, patients)
}

// DeletePatient removes the patient with the given ID
func (s *FileStore) DeletePatient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	patients, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	idx := indexOfPatient(patients, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPatientNotFound, id)
	}

	return s.save(ctx, slices.Delete(patients, idx, idx+1))
}

// ClearPatients removes the patient file entirely
func (s *FileStore) ClearPatients(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.fs.Exists(ctx, s.path)
	if err != nil {
		return fmt.Errorf("failed to check patient file: %w", err)
	}
	if !exists {
		return nil
	}

	if err := s.fs.Delete(ctx, s.path); err != nil {
		return fmt.Errorf("failed to delete patient file: %w", err)
	}
	return nil
}

// indexOfPatient returns the position of the patient with the given ID, or -1
func indexOfPatient(patients []Patient, id string) int {
	return slices.IndexFunc(patients, func(p Patient) bool {
		return p.ID == id
	})
}
