package exporter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/jakechorley/ward-allocator/pkg/db"
)

// Format is a patient export file format
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrNoPatients is returned when exporting an empty patient list to a tabular format
var ErrNoPatients = errors.New("no patients to export")

// csvHeaders are the columns of the CSV export
var csvHeaders = []string{"Name", "Severity", "Beds", "Ventilators", "Survival"}

// ParseFormat converts a user supplied format name (case-insensitive)
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (expected json, csv or xlsx)", s)
	}
}

// DefaultFileName returns the file name used when no output path is given
func (f Format) DefaultFileName() string {
	return "patients." + string(f)
}

// WritePatients writes patients to w in the given format
func WritePatients(w io.Writer, format Format, patients []db.Patient) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, patients)
	case FormatCSV:
		return WriteCSV(w, patients)
	case FormatXLSX:
		return WriteXLSX(w, patients)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteJSON writes the patients as a pretty-printed JSON array in the stored layout.
// An empty list is written as [].
func WriteJSON(w io.Writer, patients []db.Patient) error {
	if patients == nil {
		patients = []db.Patient{}
	}

	data, err := json.MarshalIndent(patients, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode patients: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write patients: %w", err)
	}
	return nil
}

// WriteCSV writes one header row and one row per patient
func WriteCSV(w io.Writer, patients []db.Patient) error {
	if len(patients) == 0 {
		return ErrNoPatients
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeaders); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, p := range patients {
		row := []string{
			p.Name,
			strconv.Itoa(p.Severity),
			strconv.Itoa(p.Beds),
			strconv.Itoa(p.Vents),
			formatFloat(p.Survival),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// formatFloat renders a float with the fewest digits needed
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
