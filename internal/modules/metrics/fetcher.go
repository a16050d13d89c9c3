package metrics

import (
	"context"
	"fmt"
	"sort"

	"github.com/aristath/tactical/internal/clients/alphavantage"
	"github.com/aristath/tactical/pkg/formulas"
	"github.com/rs/zerolog"
)

const (
	// RSIWindow is the momentum oscillator period.
	RSIWindow = 90
	// PerformanceLookback is how many observations back recent performance compares against.
	PerformanceLookback = 30
)

// DataSource provides the two lookups the fetcher needs.
type DataSource interface {
	GetCompanyOverview(ctx context.Context, symbol string) (*alphavantage.CompanyOverview, error)
	GetDailyPrices(ctx context.Context, symbol string) ([]alphavantage.DailyPrice, error)
}

// Fetcher builds StockMetrics from a DataSource.
type Fetcher struct {
	source DataSource
	log    zerolog.Logger
}

// NewFetcher creates a new metrics fetcher
func NewFetcher(source DataSource, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		source: source,
		log:    log.With().Str("component", "metrics").Logger(),
	}
}

// FetchMetrics retrieves the overview and the daily series for symbol, in that
// order, and derives the metrics record.
//
// Errors:
//   - *alphavantage.NetworkError when the provider is unreachable
//   - *alphavantage.MalformedResponseError when a body has the wrong shape
//   - *InsufficientHistoryError when fewer than PerformanceLookback bars exist
//   - provider errors (rate limit, API key, unknown symbol) as returned by the client
func (f *Fetcher) FetchMetrics(ctx context.Context, symbol string) (*StockMetrics, error) {
	overview, err := f.source.GetCompanyOverview(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overview for %s: %w", symbol, err)
	}

	prices, err := f.source.GetDailyPrices(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily prices for %s: %w", symbol, err)
	}

	m := &StockMetrics{Symbol: symbol}
	m.ROA = m.take(MetricROA, overview.ReturnOnAssetsTTM)
	m.ROE = m.take(MetricROE, overview.ReturnOnEquityTTM)
	m.ROI = m.take(MetricROI, overview.ReturnOnInvestmentTTM)
	m.PE = m.take(MetricPE, overview.PERatio)
	m.DE = m.take(MetricDE, overview.DebtToEquity)
	m.CurrentRatio = m.take(MetricCurrentRatio, overview.CurrentRatio)
	m.EPSGrowth = m.take(MetricEPSGrowth, overview.EPSGrowth5Y)

	if err := m.applyPriceSeries(closesOldestFirst(prices)); err != nil {
		return nil, err
	}

	if len(m.Missing) > 0 {
		f.log.Warn().
			Str("symbol", symbol).
			Strs("missing", m.Missing).
			Msg("Metrics defaulted to zero")
	}

	f.log.Debug().
		Str("symbol", symbol).
		Int("bars", len(prices)).
		Float64("rsi", m.RSI).
		Float64("recent_performance", m.RecentPerformance).
		Msg("Metrics computed")

	return m, nil
}

// applyPriceSeries sets RSI and recent performance from chronological closes.
func (m *StockMetrics) applyPriceSeries(closes []float64) error {
	if len(closes) < PerformanceLookback {
		return &InsufficientHistoryError{Symbol: m.Symbol, Have: len(closes), Need: PerformanceLookback}
	}

	performance := formulas.PercentChange(closes, PerformanceLookback)
	if performance == nil {
		return &alphavantage.MalformedResponseError{
			Function: alphavantage.FunctionTimeSeriesDaily,
			Reason:   fmt.Sprintf("zero close %d observations back", PerformanceLookback),
		}
	}
	m.RecentPerformance = *performance

	// Fewer than RSIWindow+1 closes leaves RSI undefined
	m.RSI = m.take(MetricRSI, formulas.CalculateRSI(closes, RSIWindow))

	return nil
}

func (m *StockMetrics) take(name string, value *float64) float64 {
	if value == nil {
		m.Missing = append(m.Missing, name)
		return 0
	}
	return *value
}

// closesOldestFirst orders closes by date, oldest first, whatever order the
// source returned them in.
func closesOldestFirst(prices []alphavantage.DailyPrice) []float64 {
	ordered := make([]alphavantage.DailyPrice, len(prices))
	copy(ordered, prices)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	closes := make([]float64, len(ordered))
	for i, p := range ordered {
		closes[i] = p.Close
	}
	return closes
}
