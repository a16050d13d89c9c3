package signal

import (
	"testing"

	"github.com/aristath/tactical/internal/modules/metrics"
	"github.com/stretchr/testify/assert"
)

// boundaryMetrics meets every fundamental threshold exactly and both
// technical thresholds by a hair.
// boundaryMetrics sits exactly on every inclusive fundamental limit. P/E < 20
// is strict, so 19.99 is the closest passing value.
func boundaryMetrics() metrics.StockMetrics {
	return metrics.StockMetrics{
		Symbol:            "NVDA",
		ROA:               5.0,
		ROE:               10.0,
		ROI:               7.0,
		PE:                19.99,
		DE:                1.0,
		CurrentRatio:      1.5,
		EPSGrowth:         5.0,
		RSI:               29.9,
		RecentPerformance: -5.1,
	}
}

func TestEvaluate_BoundaryIsBuy(t *testing.T) {
	d := Evaluate(boundaryMetrics(), DefaultThresholds())

	assert.True(t, d.GoodTimeToBuy)
	assert.True(t, d.Fundamentals)
	assert.True(t, d.Technicals)
	assert.Empty(t, d.Failed)
	assert.Equal(t, "NVDA", d.Symbol)
	assert.Equal(t, boundaryMetrics(), d.Metrics)
}

func TestEvaluate_SingleFundamentalFailure(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *metrics.StockMetrics)
		failed string
	}{
		{"ROA below", func(m *metrics.StockMetrics) { m.ROA = 4.9 }, "ROA >= 5"},
		{"ROE below", func(m *metrics.StockMetrics) { m.ROE = 9.99 }, "ROE >= 10"},
		{"ROI below", func(m *metrics.StockMetrics) { m.ROI = 6.9 }, "ROI >= 7"},
		{"P/E at limit", func(m *metrics.StockMetrics) { m.PE = 20 }, "P/E < 20"},
		{"D/E above", func(m *metrics.StockMetrics) { m.DE = 1.01 }, "D/E <= 1"},
		{"Current Ratio below", func(m *metrics.StockMetrics) { m.CurrentRatio = 1.49 }, "Current Ratio >= 1.5"},
		{"EPS Growth below", func(m *metrics.StockMetrics) { m.EPSGrowth = 4.99 }, "EPS Growth >= 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := boundaryMetrics()
			tt.mutate(&m)

			d := Evaluate(m, DefaultThresholds())

			assert.False(t, d.GoodTimeToBuy)
			assert.False(t, d.Fundamentals)
			assert.True(t, d.Technicals)
			assert.Equal(t, []string{tt.failed}, d.Failed)
		})
	}
}

func TestEvaluate_FundamentalFailureIgnoresTechnicals(t *testing.T) {
	m := boundaryMetrics()
	m.ROA = 4.9
	m.RSI = 5
	m.RecentPerformance = -40

	d := Evaluate(m, DefaultThresholds())

	assert.False(t, d.GoodTimeToBuy)
	assert.True(t, d.Technicals)
}

func TestEvaluate_TechnicalFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *metrics.StockMetrics)
		failed []string
	}{
		{"RSI at oversold line", func(m *metrics.StockMetrics) { m.RSI = 30 }, []string{"RSI < 30"}},
		{"performance at limit", func(m *metrics.StockMetrics) { m.RecentPerformance = -5.0 }, []string{"Recent Performance < -5"}},
		{"both", func(m *metrics.StockMetrics) { m.RSI = 55; m.RecentPerformance = 3 }, []string{"RSI < 30", "Recent Performance < -5"}},
		{"RSI unavailable", func(m *metrics.StockMetrics) {
			m.RSI = 0
			m.Missing = []string{metrics.MetricRSI}
		}, []string{"RSI < 30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := boundaryMetrics()
			tt.mutate(&m)

			d := Evaluate(m, DefaultThresholds())

			assert.False(t, d.GoodTimeToBuy)
			assert.True(t, d.Fundamentals)
			assert.False(t, d.Technicals)
			assert.Equal(t, tt.failed, d.Failed)
		})
	}
}

func TestEvaluate_MissingFundamentalsEvaluateAsZero(t *testing.T) {
	m := boundaryMetrics()
	m.PE = 0
	m.Missing = []string{metrics.MetricPE}

	d := Evaluate(m, DefaultThresholds())

	// a defaulted P/E of zero satisfies P/E < 20
	assert.True(t, d.Fundamentals)
}

func TestDefaultThresholds(t *testing.T) {
	th := DefaultThresholds()

	assert.Equal(t, 5.0, th.MinROA)
	assert.Equal(t, 10.0, th.MinROE)
	assert.Equal(t, 7.0, th.MinROI)
	assert.Equal(t, 20.0, th.MaxPE)
	assert.Equal(t, 1.0, th.MaxDE)
	assert.Equal(t, 1.5, th.MinCurrentRatio)
	assert.Equal(t, 5.0, th.MinEPSGrowth)
	assert.Equal(t, 30.0, th.RSIOversold)
	assert.Equal(t, -5.0, th.MaxRecentPerformance)
}
