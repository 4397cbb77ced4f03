package allocator

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomScenario builds a reproducible patient list and pool snapshot
func randomScenario(seed uint64) ([]Patient, ResourcePools) {
	rng := rand.New(rand.NewPCG(seed, seed*31+7))

	count := rng.IntN(25)
	patients := make([]Patient, count)
	for i := range patients {
		patients[i] = Patient{
			ID:                fmt.Sprintf("p-%d", i),
			Name:              fmt.Sprintf("patient %d", i),
			Severity:          1 + rng.IntN(10),
			Survival:          float64(rng.IntN(11)) / 10, // coarse values make ties likely
			BedsNeeded:        rng.IntN(4),
			VentilatorsNeeded: rng.IntN(3),
			NeedsDoctor:       rng.IntN(2) == 0,
		}
	}

	pools := ResourcePools{
		TotalBeds:        rng.IntN(20),
		TotalVentilators: rng.IntN(8),
		TotalDoctors:     rng.IntN(6),
	}

	return patients, pools
}

func TestAllocate_Properties(t *testing.T) {
	for seed := uint64(1); seed <= 200; seed++ {
		patients, pools := randomScenario(seed)

		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			result, err := Allocate(patients, pools)
			require.NoError(t, err)

			// Total partition
			assert.Equal(t, len(patients), result.AllocatedCount+result.SkippedCount)
			assert.Len(t, result.Decisions, len(patients))

			// Remainders within [0, total]
			for _, kind := range resourceKinds {
				remaining := result.Remaining(kind)
				assert.GreaterOrEqual(t, remaining, 0, "%s remaining", kind)
				assert.LessOrEqual(t, remaining, pools.Total(kind), "%s remaining", kind)
			}

			// Ranking order, stable on ties
			inputIndex := make(map[string]int, len(patients))
			for i, p := range patients {
				inputIndex[p.ID] = i
			}
			for i := 1; i < len(result.Decisions); i++ {
				prev, curr := result.Decisions[i-1], result.Decisions[i]
				assert.GreaterOrEqual(t, prev.Priority, curr.Priority)
				if prev.Priority == curr.Priority {
					assert.Less(t, inputIndex[prev.Patient.ID], inputIndex[curr.Patient.ID])
				}
			}

			// Replay: usage is monotonic, bounded, and only allocated patients contribute
			used := map[ResourceKind]int{}
			for _, d := range result.Decisions {
				before := map[ResourceKind]int{}
				for k, v := range used {
					before[k] = v
				}

				if d.Allocated() {
					for _, kind := range resourceKinds {
						used[kind] += d.Patient.Claim(kind)
					}
				} else {
					// A skipped patient must not have fitted
					fits := true
					for _, kind := range resourceKinds {
						if used[kind]+d.Patient.Claim(kind) > pools.Total(kind) {
							fits = false
						}
					}
					assert.False(t, fits, "patient %s was skipped but fitted", d.Patient.ID)
				}

				for _, kind := range resourceKinds {
					assert.GreaterOrEqual(t, used[kind], before[kind])
					assert.LessOrEqual(t, used[kind], pools.Total(kind))
				}
			}
			for _, kind := range resourceKinds {
				assert.Equal(t, pools.Total(kind)-used[kind], result.Remaining(kind))
			}

			// Determinism
			again, err := Allocate(patients, pools)
			require.NoError(t, err)
			assert.Equal(t, result, again)
		})
	}
}
