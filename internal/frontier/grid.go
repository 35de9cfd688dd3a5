package frontier

import "fmt"

// DefaultNumSteps is the grid resolution used when none is configured.
const DefaultNumSteps = 101

// WeightGrid enumerates every long-only weight vector (w1, w2, w3) where w1
// and w2 each range over numSteps uniform values in [0, 1] and
// w3 = 1 − w1 − w2. Candidates whose implied w3 is negative beyond a 1e-9
// tolerance are discarded; within tolerance w3 is clamped to zero. Each kept
// vector is renormalized by its sum, and zero-sum candidates are discarded
// outright to guard the division. Duplicate vectors near the simplex
// boundary are intentionally kept; downstream stages identify portfolios by
// index, not by value.
//
// The scheme is specific to exactly three assets and does not scale
// combinatorially beyond that.
func WeightGrid(numSteps int) ([][]float64, error) {
	if numSteps < 2 {
		return nil, fmt.Errorf("weight grid needs at least 2 steps, got %d", numSteps)
	}
	step := 1.0 / float64(numSteps-1)
	weights := make([][]float64, 0, numSteps*numSteps)
	for i := 0; i < numSteps; i++ {
		w1 := float64(i) * step
		for j := 0; j < numSteps; j++ {
			w2 := float64(j) * step
			w3 := 1 - w1 - w2
			if w3 < -1e-9 {
				continue
			}
			if w3 < 0 {
				w3 = 0
			}
			total := w1 + w2 + w3
			if total == 0 {
				continue
			}
			weights = append(weights, []float64{w1 / total, w2 / total, w3 / total})
		}
	}
	return weights, nil
}
