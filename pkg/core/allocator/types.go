package allocator

// Status is the outcome of an allocation run for a single patient
type Status string

const (
	StatusAllocated Status = "Allocated"
	StatusSkipped   Status = "Skipped"
)

// ResourceKind names one of the finite resource pools
type ResourceKind string

const (
	ResourceBeds        ResourceKind = "beds"
	ResourceVentilators ResourceKind = "ventilators"
	ResourceDoctors     ResourceKind = "doctors"
)

// Patient is a candidate for allocation.
// The engine never mutates a Patient, it only classifies it.
type Patient struct {
	ID       string
	Name     string
	Severity int

	// Survival is a probability-like score, expected to be >= 0
	Survival float64

	BedsNeeded        int
	VentilatorsNeeded int

	// NeedsDoctor consumes exactly one unit of the doctor pool when true
	NeedsDoctor bool
}

// Priority returns the ranking score of the patient (survival * severity)
func (p Patient) Priority() float64 {
	return p.Survival * float64(p.Severity)
}

// Claim returns the number of units the patient needs from the given pool
func (p Patient) Claim(kind ResourceKind) int {
	switch kind {
	case ResourceBeds:
		return p.BedsNeeded
	case ResourceVentilators:
		return p.VentilatorsNeeded
	case ResourceDoctors:
		if p.NeedsDoctor {
			return 1
		}
	}
	return 0
}

// ResourcePools is the capacity snapshot for one allocation run.
// Totals are supplied fresh per run and never accumulated across runs.
type ResourcePools struct {
	TotalBeds        int `json:"beds"`
	TotalVentilators int `json:"ventilators"`
	TotalDoctors     int `json:"doctors"`
}

// Total returns the declared capacity of the given pool
func (rp ResourcePools) Total(kind ResourceKind) int {
	switch kind {
	case ResourceBeds:
		return rp.TotalBeds
	case ResourceVentilators:
		return rp.TotalVentilators
	case ResourceDoctors:
		return rp.TotalDoctors
	}
	return 0
}

// AllocationDecision records how a single patient was classified
type AllocationDecision struct {
	Patient  Patient
	Priority float64
	Status   Status
}

// Allocated reports whether the patient received all of its resource claims
func (d AllocationDecision) Allocated() bool {
	return d.Status == StatusAllocated
}

// AllocationResult is the transient report of one allocation run
type AllocationResult struct {
	// Pools is the capacity snapshot the run was performed against
	Pools ResourcePools

	// Decisions are in the order the engine processed patients (priority descending)
	Decisions []AllocationDecision

	AllocatedCount int
	SkippedCount   int

	BedsRemaining        int
	VentilatorsRemaining int
	DoctorsRemaining     int
}

// TotalPatients returns the number of patients considered in the run
func (r *AllocationResult) TotalPatients() int {
	return len(r.Decisions)
}

// Remaining returns the unused capacity of the given pool after the run
func (r *AllocationResult) Remaining(kind ResourceKind) int {
	switch kind {
	case ResourceBeds:
		return r.BedsRemaining
	case ResourceVentilators:
		return r.VentilatorsRemaining
	case ResourceDoctors:
		return r.DoctorsRemaining
	}
	return 0
}

// AllocatedPatients returns the patients that were allocated, in processing order
func (r *AllocationResult) AllocatedPatients() []Patient {
	return r.patientsWithStatus(StatusAllocated)
}

// SkippedPatients returns the patients that were skipped, in processing order
func (r *AllocationResult) SkippedPatients() []Patient {
	return r.patientsWithStatus(StatusSkipped)
}

func (r *AllocationResult) patientsWithStatus(status Status) []Patient {
	patients := make([]Patient, 0)
	for _, d := range r.Decisions {
		if d.Status == status {
			patients = append(patients, d.Patient)
		}
	}
	return patients
}

// resourcePool tracks committed usage of a single pool during a run
type resourcePool struct {
	kind  ResourceKind
	total int
	used  int
}

// fits reports whether n more units can be committed without exceeding the total.
// Compared against the remainder so a huge claim cannot wrap around.
func (p *resourcePool) fits(n int) bool {
	return n <= p.total-p.used
}

// remaining returns the unused capacity of the pool
func (p *resourcePool) remaining() int {
	return p.total - p.used
}

// allocationState is the running state of the greedy commit loop
type allocationState struct {
	// pools in a fixed order: beds, ventilators, doctors
	pools []*resourcePool

	// decisions made so far, in processing order
	decisions []AllocationDecision
}

// used returns the committed usage of the given pool
func (s *allocationState) used(kind ResourceKind) int {
	for _, pool := range s.pools {
		if pool.kind == kind {
			return pool.used
		}
	}
	return 0
}

// resourceKinds is the fixed processing order of pools
var resourceKinds = []ResourceKind{ResourceBeds, ResourceVentilators, ResourceDoctors}
