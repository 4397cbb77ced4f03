package allocator

import (
	"cmp"
	"slices"
)

// RankPatients returns a copy of patients sorted in descending order of priority
// (higher scores are allocated first).
//
// The sort is stable: patients with exactly equal scores keep their input order,
// so the ranking is reproducible for identical inputs.
// The input slice is left untouched.
func RankPatients(patients []Patient) []Patient {
	ranked := slices.Clone(patients)
	if ranked == nil {
		ranked = []Patient{}
	}

	slices.SortStableFunc(ranked, func(a, b Patient) int {
		// Descending - highest priority first
		return cmp.Compare(b.Priority(), a.Priority())
	})

	return ranked
}
