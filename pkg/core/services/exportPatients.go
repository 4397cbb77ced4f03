package services

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/jakechorley/ward-allocator/pkg/db"
	"github.com/jakechorley/ward-allocator/pkg/exporter"
)

// ExportPatients writes every stored patient to w in the given format.
// Returns the number of patients written.
func ExportPatients(ctx context.Context, database db.PatientReader, logger *zap.Logger, format exporter.Format, w io.Writer) (int, error) {
	logger.Debug("Exporting patients", zap.String("format", string(format)))

	patients, err := database.GetPatients(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch patients: %w", err)
	}

	if err := exporter.WritePatients(w, format, patients); err != nil {
		return 0, fmt.Errorf("failed to export patients: %w", err)
	}

	logger.Info("Patients exported", zap.String("format", string(format)), zap.Int("count", len(patients)))

	return len(patients), nil
}
