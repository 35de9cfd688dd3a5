package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontierlab/internal/frontier"
)

func sampleDataset() *frontier.Dataset {
	return &frontier.Dataset{
		Tickers: []string{"SPY", "TLT", "GLD"},
		Weights: [][]float64{
			{0, 0, 1},
			{0.5, 0, 0.5},
			{1, 0, 0},
			{0, 1, 0},
		},
		Portfolio: frontier.PortfolioSeries{
			Returns:    []float64{0.0, 0.126, 0.252, 0.10},
			Volatility: []float64{0.0, 0.08, 0.159, 0.32},
		},
		FrontierIndices: []int{0, 1, 2},
	}
}

func TestMakeFrontierChart(t *testing.T) {
	img, err := MakeFrontierChart(sampleDataset())
	require.NoError(t, err)
	require.NotEmpty(t, img)

	// PNG signature.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, img[:4])
}

func TestMakeFrontierChartCached(t *testing.T) {
	d := sampleDataset()
	first, err := MakeFrontierChart(d)
	require.NoError(t, err)
	second, err := MakeFrontierChart(d)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderCacheSingleSlot(t *testing.T) {
	var c renderCache
	c.put("a", []byte{1, 2, 3})

	got, ok := c.get("a")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, got)

	// The returned slice is a copy; mutating it leaves the slot intact.
	got[0] = 9
	again, ok := c.get("a")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, again)

	_, ok = c.get("b")
	assert.False(t, ok)

	// A new key takes over the slot and evicts the old one.
	c.put("b", []byte{4})
	_, ok = c.get("a")
	assert.False(t, ok)
	got, ok = c.get("b")
	require.True(t, ok)
	assert.Equal(t, []byte{4}, got)
}

func TestMakeFrontierChartEvictedDatasetRerenders(t *testing.T) {
	a := sampleDataset()
	b := sampleDataset()
	b.Tickers = []string{"QQQ", "IWM", "EFA"}

	first, err := MakeFrontierChart(a)
	require.NoError(t, err)
	_, err = MakeFrontierChart(b)
	require.NoError(t, err)

	// a was evicted by b; rendering it again still works.
	again, err := MakeFrontierChart(a)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestMakeFrontierChartEmptyFrontier(t *testing.T) {
	d := sampleDataset()
	d.FrontierIndices = nil
	_, err := MakeFrontierChart(d)
	require.Error(t, err)
}
