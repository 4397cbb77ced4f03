package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/ward-allocator/pkg/core/allocator"
	"github.com/jakechorley/ward-allocator/pkg/db"
)

// AllocateResources runs the allocation engine over a snapshot of the stored patients.
// The result is a transient report and is never written back to the store.
func AllocateResources(
	ctx context.Context,
	database db.PatientReader,
	logger *zap.Logger,
	pools allocator.ResourcePools,
) (*allocator.AllocationResult, error) {
	logger.Debug("Starting allocation",
		zap.Int("total_beds", pools.TotalBeds),
		zap.Int("total_ventilators", pools.TotalVentilators),
		zap.Int("total_doctors", pools.TotalDoctors))

	// Step 1: Fetch patient snapshot
	logger.Debug("Fetching patients")
	records, err := database.GetPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patients: %w", err)
	}
	logger.Debug("Found patients", zap.Int("count", len(records)))

	// Step 2: Convert to engine input
	patients := toAllocatorPatients(records)

	// Step 3: Run allocation
	result, err := allocator.Allocate(patients, pools)
	if err != nil {
		return nil, fmt.Errorf("allocation failed: %w", err)
	}

	for i, decision := range result.Decisions {
		logger.Debug("Allocation decision",
			zap.Int("rank", i+1),
			zap.String("patient_id", decision.Patient.ID),
			zap.String("name", decision.Patient.Name),
			zap.Float64("priority", decision.Priority),
			zap.String("status", string(decision.Status)))
	}

	logger.Info("Allocation complete",
		zap.Int("patients", result.TotalPatients()),
		zap.Int("allocated", result.AllocatedCount),
		zap.Int("skipped", result.SkippedCount),
		zap.Int("beds_remaining", result.BedsRemaining),
		zap.Int("ventilators_remaining", result.VentilatorsRemaining),
		zap.Int("doctors_remaining", result.DoctorsRemaining))

	return result, nil
}

// toAllocatorPatients converts stored records into engine input, preserving order
func toAllocatorPatients(records []db.Patient) []allocator.Patient {
	patients := make([]allocator.Patient, len(records))
	for i, record := range records {
		patients[i] = record.ToAllocatorPatient()
	}
	return patients
}
