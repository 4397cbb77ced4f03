package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jakechorley/ward-allocator/pkg/core/allocator"
	"github.com/jakechorley/ward-allocator/pkg/db"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorDim   = "\033[2m"
)

// Labels are the user facing strings printed by the CLI
type Labels struct {
	Patients         string
	NoPatients       string
	Severity         string
	Survival         string
	Beds             string
	Vents            string
	DoctorRequired   string
	Allocated        string
	Skipped          string
	Analytics        string
	TotalPatients    string
	BedsRemaining    string
	VentsRemaining   string
	DoctorsRemaining string
}

var labelsByLanguage = map[string]Labels{
	"en": {
		Patients:         "Patients",
		NoPatients:       "No patients stored.",
		Severity:         "Severity",
		Survival:         "Survival",
		Beds:             "Beds",
		Vents:            "Vents",
		DoctorRequired:   "Doctor Required",
		Allocated:        "Allocated",
		Skipped:          "Skipped",
		Analytics:        "Allocation Analytics",
		TotalPatients:    "Total Patients",
		BedsRemaining:    "Beds Remaining",
		VentsRemaining:   "Vents Remaining",
		DoctorsRemaining: "Doctors Remaining",
	},
	"bn": {
		Patients:         "রোগী",
		NoPatients:       "কোনো রোগী সংরক্ষিত নেই।",
		Severity:         "তীব্রতা",
		Survival:         "বেঁচে থাকার সম্ভাবনা",
		Beds:             "শয্যা",
		Vents:            "ভেন্টিলেটর",
		DoctorRequired:   "ডাক্তার প্রয়োজন",
		Allocated:        "বরাদ্দকৃত",
		Skipped:          "বাদ পড়েছে",
		Analytics:        "পরিসংখ্যান বিশ্লেষণ",
		TotalPatients:    "মোট রোগী",
		BedsRemaining:    "অবশিষ্ট শয্যা",
		VentsRemaining:   "অবশিষ্ট ভেন্টিলেটর",
		DoctorsRemaining: "অবশিষ্ট ডাক্তার",
	},
}

// LabelsFor returns the labels for a language code (en or bn)
func LabelsFor(lang string) (Labels, error) {
	code := strings.ToLower(strings.TrimSpace(lang))
	if code == "" {
		code = "en"
	}
	labels, ok := labelsByLanguage[code]
	if !ok {
		return Labels{}, fmt.Errorf("unsupported language %q (expected en or bn)", lang)
	}
	return labels, nil
}

// renderPatientCard prints the fields of one patient, indented under its name
func renderPatientCard(w io.Writer, heading string, p allocator.Patient, l Labels) {
	fmt.Fprintf(w, "%s\n", heading)
	fmt.Fprintf(w, "    %s: %d\n", l.Severity, p.Severity)
	fmt.Fprintf(w, "    %s: %s\n", l.Survival, strconv.FormatFloat(p.Survival, 'f', -1, 64))
	fmt.Fprintf(w, "    %s: %d, %s: %d\n", l.Beds, p.BedsNeeded, l.Vents, p.VentilatorsNeeded)
	if p.NeedsDoctor {
		fmt.Fprintf(w, "    %s\n", l.DoctorRequired)
	}
}

// renderPatients prints the stored patient list in insertion order
func renderPatients(w io.Writer, patients []db.Patient, l Labels) {
	if len(patients) == 0 {
		fmt.Fprintln(w, l.NoPatients)
		return
	}

	fmt.Fprintf(w, "\n%s (%d):\n\n", l.Patients, len(patients))
	for i, p := range patients {
		heading := fmt.Sprintf("%2d. %s %s(%s)%s", i+1, p.Name, colorDim, p.ID, colorReset)
		renderPatientCard(w, heading, p.ToAllocatorPatient(), l)
	}
	fmt.Fprintln(w)
}

// renderAllocation prints one card per decision in processing order followed by the analytics summary
func renderAllocation(w io.Writer, result *allocator.AllocationResult, l Labels) {
	fmt.Fprintln(w)
	for i, d := range result.Decisions {
		status := fmt.Sprintf("%s✗ %s%s", colorRed, l.Skipped, colorReset)
		if d.Allocated() {
			status = fmt.Sprintf("%s✓ %s%s", colorGreen, l.Allocated, colorReset)
		}
		heading := fmt.Sprintf("%2d. %s  %s", i+1, d.Patient.Name, status)
		renderPatientCard(w, heading, d.Patient, l)
	}

	renderSummary(w, result, l)
}

// renderSummary prints the counts and remaining capacity of an allocation run
func renderSummary(w io.Writer, result *allocator.AllocationResult, l Labels) {
	fmt.Fprintf(w, "\n%s\n", l.Analytics)
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "%s: %d\n", l.TotalPatients, result.TotalPatients())
	fmt.Fprintf(w, "✓ %s: %d | ✗ %s: %d\n", l.Allocated, result.AllocatedCount, l.Skipped, result.SkippedCount)
	fmt.Fprintf(w, "%s: %d\n", l.BedsRemaining, result.BedsRemaining)
	fmt.Fprintf(w, "%s: %d\n", l.VentsRemaining, result.VentilatorsRemaining)
	fmt.Fprintf(w, "%s: %d\n", l.DoctorsRemaining, result.DoctorsRemaining)
	fmt.Fprintln(w)
}
