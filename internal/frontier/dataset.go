package frontier

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// PortfolioSeries carries the evaluated portfolios as parallel arrays,
// index-aligned with Dataset.Weights.
type PortfolioSeries struct {
	Returns    []float64 `json:"returns"`
	Volatility []float64 `json:"volatility"`
}

// Dataset is the self-contained document the visualization consumes. The
// tickers array fixes the meaning of every weight vector index; covariance
// is the daily matrix, not annualized; frontier_indices point into weights
// and portfolio in ascending-volatility order.
type Dataset struct {
	Tickers              []string                      `json:"tickers"`
	MeanDailyReturns     map[string]float64            `json:"mean_daily_returns"`
	AnnualizedReturns    map[string]float64            `json:"annualized_returns"`
	AnnualizedVolatility map[string]float64            `json:"annualized_volatility"`
	Covariance           map[string]map[string]float64 `json:"covariance"`
	Weights              [][]float64                   `json:"weights"`
	Portfolio            PortfolioSeries               `json:"portfolio"`
	FrontierIndices      []int                         `json:"frontier_indices"`
}

// BuildDataset assembles the emitted document from the pipeline stages.
func BuildDataset(stats *Stats, weights [][]float64, points []Point, frontierIdx []int) *Dataset {
	d := &Dataset{
		Tickers:              append([]string(nil), stats.Tickers...),
		MeanDailyReturns:     map[string]float64{},
		AnnualizedReturns:    map[string]float64{},
		AnnualizedVolatility: map[string]float64{},
		Covariance:           map[string]map[string]float64{},
		Weights:              weights,
		Portfolio: PortfolioSeries{
			Returns:    make([]float64, len(points)),
			Volatility: make([]float64, len(points)),
		},
		FrontierIndices: frontierIdx,
	}
	for i, tk := range stats.Tickers {
		d.MeanDailyReturns[tk] = stats.MeanDaily[i]
		d.AnnualizedReturns[tk] = stats.AnnualReturn[i]
		d.AnnualizedVolatility[tk] = stats.AnnualVolatility[i]
		row := map[string]float64{}
		for j, other := range stats.Tickers {
			row[other] = stats.Covariance[i][j]
		}
		d.Covariance[tk] = row
	}
	for i, p := range points {
		d.Portfolio.Returns[i] = p.Return
		d.Portfolio.Volatility[i] = p.Volatility
	}
	if d.FrontierIndices == nil {
		d.FrontierIndices = []int{}
	}
	return d
}

// Marshal renders the dataset as indented JSON. Map keys serialize sorted,
// so two runs over identical input produce byte-identical output.
func (d *Dataset) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// WriteFile emits the dataset to path, creating parent directories.
func (d *Dataset) WriteFile(path string) error {
	buf, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}
