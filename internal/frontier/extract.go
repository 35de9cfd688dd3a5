package frontier

import (
	"math"
	"sort"
)

// frontierEps tolerates floating-point noise at near-ties: a point whose
// return falls within this distance of the running best still qualifies.
const frontierEps = 1e-12

// ExtractFrontier returns the indices of the Pareto-optimal portfolios, those
// where no other portfolio has both strictly lower volatility and a better
// return, ordered by ascending volatility. Ties in volatility keep the
// original index order. Rejected points never advance the running best.
func ExtractFrontier(points []Point) []int {
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return points[order[a]].Volatility < points[order[b]].Volatility
	})

	best := math.Inf(-1)
	out := make([]int, 0, len(points))
	for _, idx := range order {
		r := points[idx].Return
		if r >= best-frontierEps {
			out = append(out, idx)
			if r > best {
				best = r
			}
		}
	}
	return out
}
