// Package frontier computes a Markowitz-style efficient frontier for a
// three-asset universe by brute-force grid sampling of the weight simplex.
package frontier

import (
	"fmt"

	"frontierlab/internal/prices"
)

// Params configures one pipeline run. Zero values fall back to the
// conventional 252 trading days and the default grid resolution.
type Params struct {
	NumSteps    int
	TradingDays float64
}

func (p Params) withDefaults() Params {
	if p.NumSteps == 0 {
		p.NumSteps = DefaultNumSteps
	}
	if p.TradingDays == 0 {
		p.TradingDays = 252
	}
	return p
}

// Run executes the full pipeline over a price table: returns → statistics →
// weight grid → evaluation → frontier extraction → dataset assembly. It is a
// pure function of its inputs; the run either yields a complete dataset or
// an error, never a partial document.
func Run(table *prices.Table, p Params) (*Dataset, error) {
	p = p.withDefaults()
	if table.NumAssets() != 3 {
		return nil, fmt.Errorf("frontier pipeline supports exactly 3 assets, got %d", table.NumAssets())
	}

	rt := Returns(table)
	stats, err := ComputeStats(rt, p.TradingDays)
	if err != nil {
		return nil, err
	}

	weights, err := WeightGrid(p.NumSteps)
	if err != nil {
		return nil, err
	}

	points := Evaluate(weights, stats, p.TradingDays)
	frontierIdx := ExtractFrontier(points)

	return BuildDataset(stats, weights, points, frontierIdx), nil
}
