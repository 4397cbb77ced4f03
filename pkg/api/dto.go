package api

import (
	"github.com/jakechorley/ward-allocator/pkg/core/allocator"
	"github.com/jakechorley/ward-allocator/pkg/core/services"
)

// createPatientRequest is the body of POST /patients
type createPatientRequest struct {
	Name        string  `json:"name"`
	Severity    int     `json:"severity"`
	Beds        int     `json:"beds"`
	Vents       int     `json:"vents"`
	Survival    float64 `json:"survival"`
	NeedsDoctor bool    `json:"needsDoctor"`
}

func (r createPatientRequest) toInput() services.PatientInput {
	return services.PatientInput{
		Name:        r.Name,
		Severity:    r.Severity,
		Beds:        r.Beds,
		Vents:       r.Vents,
		Survival:    r.Survival,
		NeedsDoctor: r.NeedsDoctor,
	}
}

// updatePatientRequest is the body of PUT /patients/:id. Absent fields are left unchanged.
type updatePatientRequest struct {
	Name        *string  `json:"name"`
	Severity    *int     `json:"severity"`
	Beds        *int     `json:"beds"`
	Vents       *int     `json:"vents"`
	Survival    *float64 `json:"survival"`
	NeedsDoctor *bool    `json:"needsDoctor"`
}

func (r updatePatientRequest) toUpdate() services.PatientUpdate {
	return services.PatientUpdate{
		Name:        r.Name,
		Severity:    r.Severity,
		Beds:        r.Beds,
		Vents:       r.Vents,
		Survival:    r.Survival,
		NeedsDoctor: r.NeedsDoctor,
	}
}

// allocateRequest is the body of POST /allocate. Absent pools fall back to the configured defaults.
type allocateRequest struct {
	Beds        *int `json:"beds"`
	Ventilators *int `json:"ventilators"`
	Doctors     *int `json:"doctors"`
}

func (r allocateRequest) poolsOrDefault(defaults allocator.ResourcePools) allocator.ResourcePools {
	pools := defaults
	if r.Beds != nil {
		pools.TotalBeds = *r.Beds
	}
	if r.Ventilators != nil {
		pools.TotalVentilators = *r.Ventilators
	}
	if r.Doctors != nil {
		pools.TotalDoctors = *r.Doctors
	}
	return pools
}

type decisionResponse struct {
	Rank        int     `json:"rank"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Severity    int     `json:"severity"`
	Survival    float64 `json:"survival"`
	Priority    float64 `json:"priority"`
	Beds        int     `json:"beds"`
	Vents       int     `json:"vents"`
	NeedsDoctor bool    `json:"needsDoctor"`
	Status      string  `json:"status"`
}

type summaryResponse struct {
	TotalPatients        int `json:"totalPatients"`
	Allocated            int `json:"allocated"`
	Skipped              int `json:"skipped"`
	BedsRemaining        int `json:"bedsRemaining"`
	VentilatorsRemaining int `json:"ventilatorsRemaining"`
	DoctorsRemaining     int `json:"doctorsRemaining"`
}

// chartResponse feeds the allocated/skipped chart of a front end
type chartResponse struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

type allocationResponse struct {
	Pools     allocator.ResourcePools `json:"pools"`
	Decisions []decisionResponse      `json:"decisions"`
	Summary   summaryResponse         `json:"summary"`
	Chart     chartResponse           `json:"chart"`
}

func newAllocationResponse(result *allocator.AllocationResult) allocationResponse {
	decisions := make([]decisionResponse, len(result.Decisions))
	for i, d := range result.Decisions {
		decisions[i] = decisionResponse{
			Rank:        i + 1,
			ID:          d.Patient.ID,
			Name:        d.Patient.Name,
			Severity:    d.Patient.Severity,
			Survival:    d.Patient.Survival,
			Priority:    d.Priority,
			Beds:        d.Patient.BedsNeeded,
			Vents:       d.Patient.VentilatorsNeeded,
			NeedsDoctor: d.Patient.NeedsDoctor,
			Status:      string(d.Status),
		}
	}

	return allocationResponse{
		Pools:     result.Pools,
		Decisions: decisions,
		Summary: summaryResponse{
			TotalPatients:        result.TotalPatients(),
			Allocated:            result.AllocatedCount,
			Skipped:              result.SkippedCount,
			BedsRemaining:        result.BedsRemaining,
			VentilatorsRemaining: result.VentilatorsRemaining,
			DoctorsRemaining:     result.DoctorsRemaining,
		},
		Chart: chartResponse{
			Labels: []string{string(allocator.StatusAllocated), string(allocator.StatusSkipped)},
			Data:   []int{result.AllocatedCount, result.SkippedCount},
		},
	}
}
