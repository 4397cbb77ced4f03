package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/ward-allocator/pkg/core/allocator"
	"github.com/jakechorley/ward-allocator/pkg/db"
)

func TestLabelsFor(t *testing.T) {
	tests := []struct {
		lang      string
		allocated string
		wantErr   bool
	}{
		{"en", "Allocated", false},
		{"", "Allocated", false},
		{" BN ", "বরাদ্দকৃত", false},
		{"fr", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			labels, err := LabelsFor(tt.lang)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.allocated, labels.Allocated)
		})
	}
}

func TestLabelsFor_AllFieldsTranslated(t *testing.T) {
	for lang, labels := range labelsByLanguage {
		t.Run(lang, func(t *testing.T) {
			for _, v := range []string{
				labels.Patients, labels.NoPatients, labels.Severity, labels.Survival,
				labels.Beds, labels.Vents, labels.DoctorRequired, labels.Allocated,
				labels.Skipped, labels.Analytics, labels.TotalPatients,
				labels.BedsRemaining, labels.VentsRemaining, labels.DoctorsRemaining,
			} {
				assert.NotEmpty(t, v)
			}
		})
	}
}

func TestRenderAllocation(t *testing.T) {
	result, err := allocator.Allocate([]allocator.Patient{
		{ID: "b", Name: "Bob", Severity: 5, Survival: 0.5, BedsNeeded: 3},
		{ID: "a", Name: "Alice", Severity: 9, Survival: 0.8, BedsNeeded: 2, VentilatorsNeeded: 1, NeedsDoctor: true},
	}, allocator.ResourcePools{TotalBeds: 4, TotalVentilators: 1, TotalDoctors: 1})
	require.NoError(t, err)

	labels, err := LabelsFor("en")
	require.NoError(t, err)

	var buf bytes.Buffer
	renderAllocation(&buf, result, labels)
	out := buf.String()

	alice := strings.Index(out, "Alice")
	bob := strings.Index(out, "Bob")
	require.True(t, alice >= 0 && bob >= 0)
	assert.Less(t, alice, bob, "Cards are printed in priority order")

	assert.Contains(t, out, "Doctor Required")
	assert.Contains(t, out, "Survival: 0.8")
	assert.Contains(t, out, "Beds: 2, Vents: 1")
	assert.Contains(t, out, "Total Patients: 2")
	assert.Contains(t, out, "Allocated: 1 | ✗ Skipped: 1")
	assert.Contains(t, out, "Beds Remaining: 2")
	assert.Contains(t, out, "Vents Remaining: 0")
	assert.Contains(t, out, "Doctors Remaining: 0")
}

func TestRenderAllocation_Bengali(t *testing.T) {
	result, err := allocator.Allocate(nil, allocator.ResourcePools{TotalBeds: 1, TotalVentilators: 2, TotalDoctors: 3})
	require.NoError(t, err)

	labels, err := LabelsFor("bn")
	require.NoError(t, err)

	var buf bytes.Buffer
	renderAllocation(&buf, result, labels)

	assert.Contains(t, buf.String(), "মোট রোগী: 0")
	assert.Contains(t, buf.String(), "অবশিষ্ট ডাক্তার: 3")
}

func TestRenderPatients(t *testing.T) {
	labels, err := LabelsFor("en")
	require.NoError(t, err)

	var buf bytes.Buffer
	renderPatients(&buf, nil, labels)
	assert.Equal(t, "No patients stored.\n", buf.String())

	buf.Reset()
	renderPatients(&buf, []db.Patient{
		{ID: "p-1", Name: "Alice", Severity: 9, Beds: 2, Vents: 1, Survival: 0.8},
		{ID: "p-2", Name: "Bob", Severity: 5, Beds: 3, Survival: 0.5, NeedsDoctor: true},
	}, labels)
	out := buf.String()

	assert.Contains(t, out, "Patients (2):")
	assert.Contains(t, out, " 1. Alice")
	assert.Contains(t, out, " 2. Bob")
	assert.Equal(t, 1, strings.Count(out, "Doctor Required"))
}
