package allocator

// Allocator runs a single greedy allocation pass over a ranked patient list
type Allocator struct {
	state *allocationState
}

// Allocate ranks patients by priority and greedily commits beds, ventilators and doctors
// until the pools run out. Every patient ends up either Allocated or Skipped.
//
// Allocation is all-or-nothing per patient: a patient is allocated only if all of its claims
// fit in the remaining capacity at the time it is considered. Skipped patients are never
// revisited. This is a greedy heuristic by priority, not an optimal multi-resource packing.
//
// Inputs are not mutated. Malformed input (negative capacities or needs, invalid survival)
// is rejected with an error wrapping ErrInvalidInput.
func Allocate(patients []Patient, pools ResourcePools) (*AllocationResult, error) {
	if err := ValidateInput(patients, pools); err != nil {
		return nil, err
	}

	allocator := InitAllocation(pools)

	// Main allocation loop
	for _, patient := range RankPatients(patients) {
		allocator.allocatePatient(patient)
	}

	return allocator.buildResult(pools), nil
}

// InitAllocation creates an allocator with empty usage for each pool
func InitAllocation(pools ResourcePools) *Allocator {
	state := &allocationState{
		pools:     make([]*resourcePool, 0, len(resourceKinds)),
		decisions: []AllocationDecision{},
	}

	for _, kind := range resourceKinds {
		state.pools = append(state.pools, &resourcePool{
			kind:  kind,
			total: pools.Total(kind),
		})
	}

	return &Allocator{state: state}
}

// IsFeasible reports whether every claim of the patient fits in the remaining capacity.
// Any pool that cannot hold its claim vetoes the allocation.
func (a *Allocator) IsFeasible(patient Patient) bool {
	for _, pool := range a.state.pools {
		if !pool.fits(patient.Claim(pool.kind)) {
			return false
		}
	}
	return true
}

// allocatePatient classifies a patient and commits its claims if it is feasible
func (a *Allocator) allocatePatient(patient Patient) {
	decision := AllocationDecision{
		Patient:  patient,
		Priority: patient.Priority(),
		Status:   StatusSkipped,
	}

	if a.IsFeasible(patient) {
		// Commit all claims together
		for _, pool := range a.state.pools {
			pool.used += patient.Claim(pool.kind)
		}
		decision.Status = StatusAllocated
	}

	a.state.decisions = append(a.state.decisions, decision)
}

// buildResult creates the final allocation report
func (a *Allocator) buildResult(pools ResourcePools) *AllocationResult {
	result := &AllocationResult{
		Pools:     pools,
		Decisions: a.state.decisions,
	}

	for _, decision := range a.state.decisions {
		if decision.Allocated() {
			result.AllocatedCount++
		} else {
			result.SkippedCount++
		}
	}

	for _, pool := range a.state.pools {
		switch pool.kind {
		case ResourceBeds:
			result.BedsRemaining = pool.remaining()
		case ResourceVentilators:
			result.VentilatorsRemaining = pool.remaining()
		case ResourceDoctors:
			result.DoctorsRemaining = pool.remaining()
		}
	}

	return result
}
