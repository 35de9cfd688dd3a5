package frontier

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"frontierlab/internal/prices"
)

// InsufficientDataError reports that an asset has too few usable return
// observations to compute variance or covariance.
type InsufficientDataError struct {
	Ticker string
	Rows   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: %d usable return rows, need at least 2", e.Ticker, e.Rows)
}

// ReturnTable holds daily percentage returns, column-major like
// prices.Table. It has one fewer row than the price table it came from;
// rows that are NaN across every asset are dropped. No filling is applied:
// a return is NaN whenever either of its two prices is missing.
type ReturnTable struct {
	Tickers []string
	Returns [][]float64
}

// NumRows returns the number of return observations per asset column.
func (rt *ReturnTable) NumRows() int {
	if len(rt.Returns) == 0 {
		return 0
	}
	return len(rt.Returns[0])
}

// Returns computes period-over-period percentage returns from a price table.
func Returns(t *prices.Table) *ReturnTable {
	n := t.NumRows()
	rowCap := n - 1
	if rowCap < 0 {
		rowCap = 0
	}
	cols := make([][]float64, t.NumAssets())
	for c := range cols {
		col := make([]float64, 0, rowCap)
		for i := 1; i < n; i++ {
			prev, cur := t.Closes[c][i-1], t.Closes[c][i]
			if prices.IsMissing(prev) || prices.IsMissing(cur) {
				col = append(col, math.NaN())
				continue
			}
			col = append(col, (cur-prev)/prev)
		}
		cols[c] = col
	}

	// Drop rows where every asset is NaN (the leading row always is when
	// no earlier data exists, and gaps shared by all assets also qualify).
	rows := 0
	if len(cols) > 0 {
		rows = len(cols[0])
	}
	keep := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		all := true
		for c := range cols {
			if !math.IsNaN(cols[c][i]) {
				all = false
				break
			}
		}
		if !all {
			keep = append(keep, i)
		}
	}
	if len(keep) != rows {
		for c := range cols {
			trimmed := make([]float64, 0, len(keep))
			for _, i := range keep {
				trimmed = append(trimmed, cols[c][i])
			}
			cols[c] = trimmed
		}
	}

	return &ReturnTable{Tickers: append([]string(nil), t.Tickers...), Returns: cols}
}

// Stats holds the per-asset return statistics and the daily covariance
// matrix, all indexed in ticker order.
type Stats struct {
	Tickers          []string
	MeanDaily        []float64
	AnnualReturn     []float64
	AnnualVolatility []float64
	Covariance       [][]float64 // daily, not annualized
}

// ComputeStats derives per-asset statistics from a return table.
// Annualization is linear for returns (mean × tradingDays) and
// square-root-of-time for volatility; volatility uses the population
// standard deviation while covariance is Bessel-corrected, matching the
// reference output. NaN observations are skipped: means and deviations use
// each asset's defined entries, covariance uses pairwise-complete rows.
func ComputeStats(rt *ReturnTable, tradingDays float64) (*Stats, error) {
	n := len(rt.Tickers)
	s := &Stats{
		Tickers:          append([]string(nil), rt.Tickers...),
		MeanDaily:        make([]float64, n),
		AnnualReturn:     make([]float64, n),
		AnnualVolatility: make([]float64, n),
		Covariance:       make([][]float64, n),
	}

	for i := 0; i < n; i++ {
		defined := dropNaN(rt.Returns[i])
		if len(defined) < 2 {
			return nil, &InsufficientDataError{Ticker: rt.Tickers[i], Rows: len(defined)}
		}
		m := stat.Mean(defined, nil)
		s.MeanDaily[i] = m
		s.AnnualReturn[i] = m * tradingDays
		s.AnnualVolatility[i] = stat.PopStdDev(defined, nil) * math.Sqrt(tradingDays)
	}

	for i := range s.Covariance {
		s.Covariance[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			xs, ys := pairwiseComplete(rt.Returns[i], rt.Returns[j])
			if len(xs) < 2 {
				return nil, &InsufficientDataError{Ticker: rt.Tickers[i] + "/" + rt.Tickers[j], Rows: len(xs)}
			}
			c := stat.Covariance(xs, ys, nil)
			s.Covariance[i][j] = c
			s.Covariance[j][i] = c
		}
	}

	return s, nil
}

func dropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		out = append(out, x)
	}
	return out
}

func pairwiseComplete(xs, ys []float64) ([]float64, []float64) {
	ox := make([]float64, 0, len(xs))
	oy := make([]float64, 0, len(ys))
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		ox = append(ox, xs[i])
		oy = append(oy, ys[i])
	}
	return ox, oy
}
