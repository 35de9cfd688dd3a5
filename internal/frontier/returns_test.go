package frontier

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontierlab/internal/prices"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestReturns(t *testing.T) {
	table := &prices.Table{
		Dates:   []time.Time{day(0), day(1), day(2)},
		Tickers: []string{"A", "B"},
		Closes: [][]float64{
			{100, 101, 102.01},
			{50, 51, 51},
		},
	}

	rt := Returns(table)
	require.Equal(t, 2, rt.NumRows())
	assert.InDelta(t, 0.01, rt.Returns[0][0], 1e-12)
	assert.InDelta(t, 0.01, rt.Returns[0][1], 1e-12)
	assert.InDelta(t, 0.02, rt.Returns[1][0], 1e-12)
	assert.InDelta(t, 0.0, rt.Returns[1][1], 1e-12)
}

func TestReturnsKeepsPartialRows(t *testing.T) {
	table := &prices.Table{
		Dates:   []time.Time{day(0), day(1), day(2), day(3)},
		Tickers: []string{"A", "B"},
		Closes: [][]float64{
			{100, 101, math.NaN(), 103},
			{50, 51, 52, 53},
		},
	}

	rt := Returns(table)
	// A's gap makes two of its returns undefined, but B still has values
	// there, so the rows stay and no filling happens.
	require.Equal(t, 3, rt.NumRows())
	assert.True(t, math.IsNaN(rt.Returns[0][1]))
	assert.True(t, math.IsNaN(rt.Returns[0][2]))
	assert.False(t, math.IsNaN(rt.Returns[1][1]))
}

func TestReturnsDropsAllNaNRows(t *testing.T) {
	table := &prices.Table{
		Dates:   []time.Time{day(0), day(1), day(2), day(3)},
		Tickers: []string{"A", "B"},
		Closes: [][]float64{
			{100, 101, math.NaN(), 103},
			{50, 51, math.NaN(), 53},
		},
	}

	rt := Returns(table)
	// The shared gap produces two rows that are NaN for every asset; both
	// are dropped, leaving only the first return row.
	require.Equal(t, 1, rt.NumRows())
	assert.InDelta(t, 0.01, rt.Returns[0][0], 1e-12)
	assert.InDelta(t, 0.02, rt.Returns[1][0], 1e-12)
}

func TestComputeStats(t *testing.T) {
	rt := &ReturnTable{
		Tickers: []string{"A", "B"},
		Returns: [][]float64{
			{0.01, 0.02, 0.03},
			{0.03, 0.02, 0.01},
		},
	}

	s, err := ComputeStats(rt, 252)
	require.NoError(t, err)

	assert.InDelta(t, 0.02, s.MeanDaily[0], 1e-12)
	assert.InDelta(t, 0.02*252, s.AnnualReturn[0], 1e-12)

	// Volatility is the population standard deviation scaled by sqrt(252).
	popStd := math.Sqrt(2e-4 / 3)
	assert.InDelta(t, popStd*math.Sqrt(252), s.AnnualVolatility[0], 1e-12)

	// Covariance is Bessel-corrected and daily.
	assert.InDelta(t, 1e-4, s.Covariance[0][0], 1e-12)
	assert.InDelta(t, -1e-4, s.Covariance[0][1], 1e-12)

	for i := range s.Covariance {
		for j := range s.Covariance {
			assert.InDelta(t, s.Covariance[j][i], s.Covariance[i][j], 1e-15,
				"covariance must be symmetric")
		}
	}
}

func TestComputeStatsSkipsNaN(t *testing.T) {
	rt := &ReturnTable{
		Tickers: []string{"A", "B"},
		Returns: [][]float64{
			{0.01, math.NaN(), 0.03},
			{0.01, 0.02, 0.03},
		},
	}

	s, err := ComputeStats(rt, 252)
	require.NoError(t, err)

	// A's mean ignores the undefined entry.
	assert.InDelta(t, 0.02, s.MeanDaily[0], 1e-12)
	// Covariance uses only the pairwise-complete rows (first and last).
	assert.InDelta(t, 2e-4, s.Covariance[0][1], 1e-12)
}

func TestReturnsEmptyTable(t *testing.T) {
	table := &prices.Table{Tickers: []string{"A", "B", "C"}}
	rt := Returns(table)
	require.Equal(t, 0, rt.NumRows())
	require.Len(t, rt.Returns, 3)
}

func TestReturnsSingleRow(t *testing.T) {
	table := &prices.Table{
		Dates:   []time.Time{day(0)},
		Tickers: []string{"A"},
		Closes:  [][]float64{{100}},
	}
	rt := Returns(table)
	require.Equal(t, 0, rt.NumRows())
}

func TestComputeStatsInsufficientData(t *testing.T) {
	rt := &ReturnTable{
		Tickers: []string{"A"},
		Returns: [][]float64{{0.01}},
	}

	_, err := ComputeStats(rt, 252)
	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "A", insufficient.Ticker)
	assert.Equal(t, 1, insufficient.Rows)
}

func TestComputeStatsInsufficientPairwise(t *testing.T) {
	// Each asset alone has two observations, but they never overlap.
	rt := &ReturnTable{
		Tickers: []string{"A", "B"},
		Returns: [][]float64{
			{0.01, 0.02, math.NaN(), math.NaN()},
			{math.NaN(), math.NaN(), 0.01, 0.02},
		},
	}

	_, err := ComputeStats(rt, 252)
	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
}
