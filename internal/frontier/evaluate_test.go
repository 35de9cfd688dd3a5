package frontier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeAssetStats builds statistics for a high-return/high-risk asset, a
// middling asset and a zero-risk asset, with volatilities consistent with
// the covariance diagonal.
func threeAssetStats() *Stats {
	meanDaily := []float64{0.001, 0.0005, 0.0}
	dailyVol := []float64{0.01, 0.02, 0.0}

	s := &Stats{
		Tickers:          []string{"A", "B", "C"},
		MeanDaily:        meanDaily,
		AnnualReturn:     make([]float64, 3),
		AnnualVolatility: make([]float64, 3),
		Covariance:       make([][]float64, 3),
	}
	for i := 0; i < 3; i++ {
		s.AnnualReturn[i] = meanDaily[i] * 252
		s.AnnualVolatility[i] = dailyVol[i] * math.Sqrt(252)
		s.Covariance[i] = make([]float64, 3)
		s.Covariance[i][i] = dailyVol[i] * dailyVol[i]
	}
	return s
}

func TestEvaluateIndexAlignment(t *testing.T) {
	stats := threeAssetStats()
	weights, err := WeightGrid(21)
	require.NoError(t, err)

	points := Evaluate(weights, stats, 252)
	require.Len(t, points, len(weights))

	// Every pure single-asset vector reproduces that asset's own stats at
	// the same index, proving order is preserved through the fan-out.
	for i, w := range weights {
		for k := 0; k < 3; k++ {
			if w[k] == 1 {
				assert.InDelta(t, stats.AnnualReturn[k], points[i].Return, 1e-9)
				assert.InDelta(t, stats.AnnualVolatility[k], points[i].Volatility, 1e-9)
			}
		}
	}
}

func TestEvaluateQuadraticForm(t *testing.T) {
	stats := threeAssetStats()
	w := [][]float64{{0.5, 0.5, 0}}

	points := Evaluate(w, stats, 252)
	require.Len(t, points, 1)

	assert.InDelta(t, (0.5*0.001+0.5*0.0005)*252, points[0].Return, 1e-12)

	// Uncorrelated assets: variance is the weighted sum of variances.
	wantVar := (0.25*0.0001 + 0.25*0.0004) * 252
	assert.InDelta(t, math.Sqrt(wantVar), points[0].Volatility, 1e-12)
}

func TestEvaluateClampsNegativeResidue(t *testing.T) {
	// A singular covariance matrix can push the quadratic form a hair
	// below zero; volatility must come back as exactly zero, not NaN.
	s := &Stats{
		Tickers:          []string{"A", "B", "C"},
		MeanDaily:        []float64{0, 0, 0},
		AnnualReturn:     []float64{0, 0, 0},
		AnnualVolatility: []float64{0, 0, 0},
		Covariance: [][]float64{
			{1e-4, -1e-4, 0},
			{-1e-4, 1e-4, 0},
			{0, 0, 0},
		},
	}
	points := Evaluate([][]float64{{0.5, 0.5, 0}, {1.0 / 3, 1.0 / 3, 1.0 / 3}}, s, 252)
	for _, p := range points {
		assert.False(t, math.IsNaN(p.Volatility))
		assert.GreaterOrEqual(t, p.Volatility, 0.0)
	}
}

func TestEvaluateEmpty(t *testing.T) {
	points := Evaluate(nil, threeAssetStats(), 252)
	assert.Empty(t, points)
}
