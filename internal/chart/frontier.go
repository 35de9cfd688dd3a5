package chart

import (
	"fmt"
	"strings"

	"github.com/vicanso/go-charts/v2"

	"frontierlab/internal/frontier"
)

// MakeFrontierChart renders the efficient frontier curve as a PNG: x axis is
// annualized volatility, y axis annualized return, both in percent. The
// frontier indices already arrive in ascending-volatility order, so the
// curve can be drawn directly as a line series.
func MakeFrontierChart(d *frontier.Dataset) ([]byte, error) {
	if len(d.FrontierIndices) == 0 {
		return nil, fmt.Errorf("no frontier points to chart")
	}

	cacheKey := fmt.Sprintf("frontier-%s-%d-%d", strings.Join(d.Tickers, ","), len(d.Weights), len(d.FrontierIndices))
	if img, ok := lastRender.get(cacheKey); ok {
		return img, nil
	}

	xLabels := make([]string, 0, len(d.FrontierIndices))
	rets := make([]float64, 0, len(d.FrontierIndices))
	for _, idx := range d.FrontierIndices {
		xLabels = append(xLabels, fmt.Sprintf("%.2f%%", d.Portfolio.Volatility[idx]*100))
		rets = append(rets, d.Portfolio.Returns[idx]*100)
	}

	yMin, yMax := rets[0], rets[0]
	for _, v := range rets {
		if v < yMin {
			yMin = v
		}
		if v > yMax {
			yMax = v
		}
	}
	padding := (yMax - yMin) * 0.05
	if padding == 0 {
		padding = 0.5
	}
	yMin -= padding
	yMax += padding

	low := d.FrontierIndices[0]
	high := d.FrontierIndices[len(d.FrontierIndices)-1]
	title := fmt.Sprintf("Efficient Frontier (%s)", strings.Join(d.Tickers, ", "))
	subtitle := fmt.Sprintf("MinVol: %.2f%% @ %.2f%% ret | MaxVol: %.2f%% @ %.2f%% ret | %d portfolios",
		d.Portfolio.Volatility[low]*100, d.Portfolio.Returns[low]*100,
		d.Portfolio.Volatility[high]*100, d.Portfolio.Returns[high]*100,
		len(d.Weights))

	splitNum := 6
	if len(xLabels) <= 30 {
		splitNum = len(xLabels) / 3
		if splitNum < 3 {
			splitNum = 3
		}
	}

	p, err := charts.LineRender(
		[][]float64{rets},
		charts.TitleTextOptionFunc(title+"\n"+subtitle),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        xLabels,
			SplitNumber: splitNum,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{
			Min:         &yMin,
			Max:         &yMax,
			DivideCount: 5,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(1000),
		charts.HeightOptionFunc(600),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart bytes: %w", err)
	}

	lastRender.put(cacheKey, buf)

	return buf, nil
}
