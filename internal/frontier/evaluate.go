package frontier

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Point is one evaluated portfolio: annualized expected return and
// annualized volatility. Its position in the slice returned by Evaluate is
// the portfolio's identity for the rest of the pipeline.
type Point struct {
	Return     float64
	Volatility float64
}

// Evaluate maps every weight vector to its annualized return and volatility.
// The return is the weighted mean daily return scaled by tradingDays; the
// volatility is the quadratic form w^T (Σ × tradingDays) w under the daily
// covariance matrix Σ. Tiny negative residues from floating-point error are
// clamped to zero before the square root.
//
// Each weight vector is independent, so evaluation fans out across one
// worker per CPU; workers write disjoint index ranges of the output, which
// keeps it exactly aligned with the input with no re-sorting.
func Evaluate(weights [][]float64, stats *Stats, tradingDays float64) []Point {
	n := len(weights)
	out := make([]Point, n)
	if n == 0 {
		return out
	}

	k := len(stats.Tickers)
	annCov := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			annCov.SetSym(i, j, stats.Covariance[i][j]*tradingDays)
		}
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				v := mat.NewVecDense(k, weights[i])
				variance := mat.Inner(v, annCov, v)
				if variance < 0 {
					variance = 0
				}
				out[i] = Point{
					Return:     floats.Dot(weights[i], stats.MeanDaily) * tradingDays,
					Volatility: math.Sqrt(variance),
				}
			}
		}()
	}
	wg.Wait()

	return out
}
