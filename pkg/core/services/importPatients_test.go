package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/ward-allocator/pkg/db"
)

func TestImportPatients_ValidArray(t *testing.T) {
	store := &mockPatientStore{}
	data := []byte(`[
		{"id": "p-1", "name": "Alice", "severity": 9, "beds": 2, "vents": 1, "survival": 0.8, "needsDoctor": true},
		{"name": "Bob", "severity": 5, "beds": 3, "vents": 0, "survival": 0.5}
	]`)

	result, err := ImportPatients(context.Background(), store, zap.NewNop(), data)
	require.NoError(t, err)

	require.Len(t, result.Imported, 2)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, "p-1", result.Imported[0].ID)
	assert.True(t, result.Imported[0].NeedsDoctor)
	assert.NotEmpty(t, result.Imported[1].ID, "Missing ID should be generated")
	assert.False(t, result.Imported[1].NeedsDoctor, "Missing needsDoctor defaults to false")
	assert.Equal(t, result.Imported, store.patients)
}

func TestImportPatients_SkipsIncompleteElements(t *testing.T) {
	store := &mockPatientStore{}
	data := []byte(`[
		{"name": "Complete", "severity": 3, "beds": 0, "vents": 0, "survival": 0.2},
		{"name": "NoSeverity", "beds": 1, "vents": 1, "survival": 0.5},
		{"severity": 2, "beds": 1, "vents": 1, "survival": 0.5},
		{"name": "NoBeds", "severity": 2, "vents": 1, "survival": 0.5},
		{"name": "BadSeverity", "severity": 0, "beds": 1, "vents": 1, "survival": 0.5},
		{"name": "WrongType", "severity": "high", "beds": 1, "vents": 1, "survival": 0.5},
		null,
		42
	]`)

	result, err := ImportPatients(context.Background(), store, zap.NewNop(), data)
	require.NoError(t, err)

	require.Len(t, result.Imported, 1)
	assert.Equal(t, "Complete", result.Imported[0].Name)

	require.Len(t, result.Skipped, 7)
	skippedIndices := make([]int, len(result.Skipped))
	for i, s := range result.Skipped {
		skippedIndices[i] = s.Index
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, skippedIndices)
	assert.Contains(t, result.Skipped[0].Reason, "severity")
	assert.Contains(t, result.Skipped[1].Reason, "name")
	assert.Contains(t, result.Skipped[2].Reason, "beds")
	assert.Contains(t, result.Skipped[3].Reason, "validation failed")
}

func TestImportPatients_ReassignsDuplicateIDs(t *testing.T) {
	store := &mockPatientStore{patients: []db.Patient{{ID: "p-1", Name: "Existing", Severity: 1}}}
	data := []byte(`[
		{"id": "p-1", "name": "Clash", "severity": 1, "beds": 0, "vents": 0, "survival": 1},
		{"id": "p-2", "name": "First", "severity": 1, "beds": 0, "vents": 0, "survival": 1},
		{"id": "p-2", "name": "Second", "severity": 1, "beds": 0, "vents": 0, "survival": 1}
	]`)

	result, err := ImportPatients(context.Background(), store, zap.NewNop(), data)
	require.NoError(t, err)

	require.Len(t, result.Imported, 3)
	assert.NotEqual(t, "p-1", result.Imported[0].ID)
	assert.Equal(t, "p-2", result.Imported[1].ID)
	assert.NotEqual(t, "p-2", result.Imported[2].ID)
}

func TestImportPatients_RejectsNonArray(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"object", `{"name": "Alice"}`},
		{"null", `null`},
		{"not json", `this is not json`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockPatientStore{}
			_, err := ImportPatients(context.Background(), store, zap.NewNop(), []byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidImport)
			assert.Equal(t, 0, store.insertions)
		})
	}
}

func TestImportPatients_EmptyArray(t *testing.T) {
	store := &mockPatientStore{}

	result, err := ImportPatients(context.Background(), store, zap.NewNop(), []byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.Skipped)
}

func TestImportPatients_InsertError(t *testing.T) {
	store := &mockPatientStore{insertErr: errors.New("write failed")}
	data := []byte(`[{"name": "A", "severity": 1, "beds": 0, "vents": 0, "survival": 1}]`)

	_, err := ImportPatients(context.Background(), store, zap.NewNop(), data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert imported patients")
}
