// Package metrics turns Alpha Vantage responses into the flat StockMetrics
// record the buy signal is evaluated against.
package metrics

import (
	"fmt"
	"strconv"
	"strings"
)

// Metric names, in the order they are reported.
const (
	MetricROA               = "ROA"
	MetricROE               = "ROE"
	MetricROI               = "ROI"
	MetricPE                = "P/E"
	MetricDE                = "D/E"
	MetricCurrentRatio      = "Current Ratio"
	MetricEPSGrowth         = "EPS Growth"
	MetricRSI               = "RSI"
	MetricRecentPerformance = "Recent Performance"
)

// MetricNames lists every StockMetrics key in report order.
var MetricNames = []string{
	MetricROA,
	MetricROE,
	MetricROI,
	MetricPE,
	MetricDE,
	MetricCurrentRatio,
	MetricEPSGrowth,
	MetricRSI,
	MetricRecentPerformance,
}

// StockMetrics is the record for one symbol at one point in time.
// Values absent at the source are zero and listed in Missing.
type StockMetrics struct {
	Symbol            string   `json:"symbol" msgpack:"symbol"`
	ROA               float64  `json:"roa" msgpack:"roa"`
	ROE               float64  `json:"roe" msgpack:"roe"`
	ROI               float64  `json:"roi" msgpack:"roi"`
	PE                float64  `json:"pe" msgpack:"pe"`
	DE                float64  `json:"de" msgpack:"de"`
	CurrentRatio      float64  `json:"current_ratio" msgpack:"current_ratio"`
	EPSGrowth         float64  `json:"eps_growth" msgpack:"eps_growth"`
	RSI               float64  `json:"rsi" msgpack:"rsi"`
	RecentPerformance float64  `json:"recent_performance" msgpack:"recent_performance"`
	Missing           []string `json:"missing,omitempty" msgpack:"missing,omitempty"`
}

// AsMap returns the metrics keyed by their report names.
func (m StockMetrics) AsMap() map[string]float64 {
	return map[string]float64{
		MetricROA:               m.ROA,
		MetricROE:               m.ROE,
		MetricROI:               m.ROI,
		MetricPE:                m.PE,
		MetricDE:                m.DE,
		MetricCurrentRatio:      m.CurrentRatio,
		MetricEPSGrowth:         m.EPSGrowth,
		MetricRSI:               m.RSI,
		MetricRecentPerformance: m.RecentPerformance,
	}
}

// IsMissing reports whether the named metric was defaulted.
func (m StockMetrics) IsMissing(name string) bool {
	for _, missing := range m.Missing {
		if missing == name {
			return true
		}
	}
	return false
}

// String renders the metrics in report order, e.g. {ROA: 0.2, ROE: 0.3, ...}.
func (m StockMetrics) String() string {
	values := m.AsMap()
	parts := make([]string, 0, len(MetricNames))
	for _, name := range MetricNames {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strconv.FormatFloat(values[name], 'g', -1, 64)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
