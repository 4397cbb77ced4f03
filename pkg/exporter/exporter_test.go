package exporter

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/ward-allocator/pkg/core/allocator"
	"github.com/jakechorley/ward-allocator/pkg/db"
)

func samplePatients() []db.Patient {
	return []db.Patient{
		{ID: "p-1", Name: "Alice", Severity: 9, Beds: 2, Vents: 1, Survival: 0.8, NeedsDoctor: true},
		{ID: "p-2", Name: "Bob", Severity: 5, Beds: 3, Vents: 0, Survival: 0.5},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"json", FormatJSON, false},
		{"CSV", FormatCSV, false},
		{" xlsx ", FormatXLSX, false},
		{"pdf", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestFormatDefaultFileName(t *testing.T) {
	assert.Equal(t, "patients.json", FormatJSON.DefaultFileName())
	assert.Equal(t, "patients.csv", FormatCSV.DefaultFileName())
}

func TestWriteJSON_RoundTripsStoredLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, samplePatients()))

	var decoded []db.Patient
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, samplePatients(), decoded)
	assert.Contains(t, buf.String(), `"needsDoctor": true`)
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]", buf.String())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, samplePatients()))

	expected := "Name,Severity,Beds,Ventilators,Survival\n" +
		"Alice,9,2,1,0.8\n" +
		"Bob,5,3,0,0.5\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteCSV_QuotesNamesWithCommas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []db.Patient{{Name: "Doe, Jane", Severity: 1, Survival: 1}}))
	assert.Contains(t, buf.String(), `"Doe, Jane",1,0,0,1`)
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteCSV(&buf, nil), ErrNoPatients)
	assert.Zero(t, buf.Len())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, samplePatients()))

	workbook, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows(sheetNamePatients)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Severity", "Beds", "Ventilators", "Survival", "Needs Doctor"}, rows[0])
	assert.Equal(t, "Alice", rows[1][0])
	assert.Equal(t, "9", rows[1][1])
	assert.Equal(t, "Bob", rows[2][0])
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteXLSX(&buf, []db.Patient{}), ErrNoPatients)
}

func TestWritePatients_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WritePatients(&buf, Format("pdf"), samplePatients()))
}

func TestWriteAllocationXLSX(t *testing.T) {
	patients := []allocator.Patient{
		{Name: "A", Severity: 9, Survival: 0.8, BedsNeeded: 2, VentilatorsNeeded: 1, NeedsDoctor: true},
		{Name: "B", Severity: 5, Survival: 0.5, BedsNeeded: 3},
	}
	result, err := allocator.Allocate(patients, allocator.ResourcePools{TotalBeds: 4, TotalVentilators: 1, TotalDoctors: 1})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteAllocationXLSX(&buf, result))

	workbook, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows(sheetNameAllocation)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "A", rows[1][1])
	assert.Equal(t, "Allocated", rows[1][8])
	assert.Equal(t, "B", rows[2][1])
	assert.Equal(t, "Skipped", rows[2][8])

	summary, err := workbook.GetRows(sheetNameSummary)
	require.NoError(t, err)
	require.Len(t, summary, 7)
	assert.Equal(t, []string{"Allocated", "1"}, summary[2])
	assert.Equal(t, []string{"Beds Remaining", "2"}, summary[4])
}

func TestWriteAllocationXLSX_NilResult(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteAllocationXLSX(&buf, nil))
}
