package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/ward-allocator/pkg/core/allocator"
	"github.com/jakechorley/ward-allocator/pkg/db"
)

const (
	sheetNamePatients   = "Patients"
	sheetNameAllocation = "Allocation"
	sheetNameSummary    = "Summary"
)

// WriteXLSX writes the patients to a workbook with a single Patients sheet
func WriteXLSX(w io.Writer, patients []db.Patient) error {
	if len(patients) == 0 {
		return ErrNoPatients
	}

	workbook := excelize.NewFile()
	defer workbook.Close()

	if err := workbook.SetSheetName("Sheet1", sheetNamePatients); err != nil {
		return fmt.Errorf("failed to name patients sheet: %w", err)
	}

	header := []interface{}{"Name", "Severity", "Beds", "Ventilators", "Survival", "Needs Doctor"}
	rows := make([][]interface{}, 0, len(patients))
	for _, p := range patients {
		rows = append(rows, []interface{}{p.Name, p.Severity, p.Beds, p.Vents, p.Survival, p.NeedsDoctor})
	}

	if err := writeTable(workbook, sheetNamePatients, header, rows); err != nil {
		return err
	}

	if err := workbook.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteAllocationXLSX writes an allocation result to a workbook with an Allocation sheet
// (one row per decision, in processing order) and a Summary sheet
func WriteAllocationXLSX(w io.Writer, result *allocator.AllocationResult) error {
	if result == nil {
		return fmt.Errorf("allocation result cannot be nil")
	}

	workbook := excelize.NewFile()
	defer workbook.Close()

	if err := workbook.SetSheetName("Sheet1", sheetNameAllocation); err != nil {
		return fmt.Errorf("failed to name allocation sheet: %w", err)
	}
	if _, err := workbook.NewSheet(sheetNameSummary); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	header := []interface{}{"Rank", "Name", "Severity", "Survival", "Priority", "Beds", "Ventilators", "Needs Doctor", "Status"}
	rows := make([][]interface{}, 0, len(result.Decisions))
	for i, d := range result.Decisions {
		p := d.Patient
		rows = append(rows, []interface{}{
			i + 1, p.Name, p.Severity, p.Survival, d.Priority,
			p.BedsNeeded, p.VentilatorsNeeded, p.NeedsDoctor, string(d.Status),
		})
	}
	if err := writeTable(workbook, sheetNameAllocation, header, rows); err != nil {
		return err
	}

	summary := [][]interface{}{
		{"Total Patients", result.TotalPatients()},
		{"Allocated", result.AllocatedCount},
		{"Skipped", result.SkippedCount},
		{"Beds Remaining", result.BedsRemaining},
		{"Ventilators Remaining", result.VentilatorsRemaining},
		{"Doctors Remaining", result.DoctorsRemaining},
	}
	if err := writeTable(workbook, sheetNameSummary, []interface{}{"Metric", "Value"}, summary); err != nil {
		return err
	}

	if err := workbook.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// writeTable writes a bold header row followed by the data rows starting at A1
func writeTable(workbook *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := workbook.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	headerStyle, err := workbook.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	lastHeaderCell, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("failed to resolve header range: %w", err)
	}
	if err := workbook.SetCellStyle(sheet, "A1", lastHeaderCell, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to resolve row %d: %w", i+2, err)
		}
		if err := workbook.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}

	return nil
}
