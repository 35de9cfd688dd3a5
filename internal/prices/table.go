package prices

import (
	"math"
	"time"
)

// Table holds daily closing prices for a fixed set of tickers. Dates are
// ascending and Closes is column-major: Closes[i] is the full series for
// Tickers[i]. The ticker order is fixed here and carried through the whole
// pipeline: weight vectors, statistics and the emitted dataset all index
// assets in this order. Missing cells are NaN.
type Table struct {
	Dates   []time.Time
	Tickers []string
	Closes  [][]float64
}

// NumRows returns the number of trading dates in the table.
func (t *Table) NumRows() int { return len(t.Dates) }

// NumAssets returns the number of tickers in the table.
func (t *Table) NumAssets() int { return len(t.Tickers) }

// Column returns the close series for the given ticker, or nil if absent.
func (t *Table) Column(ticker string) []float64 {
	for i, tk := range t.Tickers {
		if tk == ticker {
			return t.Closes[i]
		}
	}
	return nil
}

// IsMissing reports whether a cell carries no price.
func IsMissing(v float64) bool { return math.IsNaN(v) }
