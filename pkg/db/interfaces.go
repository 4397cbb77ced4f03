package db

import "context"

// PatientReader defines the read operations on the patient list
type PatientReader interface {
	GetPatients(ctx context.Context) ([]Patient, error)
	GetPatient(ctx context.Context, id string) (*Patient, error)
}

// PatientStore defines the interface for patient database operations.
// Patients are returned in insertion order.
type PatientStore interface {
	PatientReader
	InsertPatients(ctx context.Context, patients []Patient) error
	UpdatePatient(ctx context.Context, patient *Patient) error
	DeletePatient(ctx context.Context, id string) error
	ClearPatients(ctx context.Context) error
}

// Database defines the interface for all database operations.
// Both the file-backed db.FileStore and postgres.DB implement this interface.
type Database interface {
	PatientStore
	Close()
}
