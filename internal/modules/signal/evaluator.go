// Package signal decides whether a stock is a buy from its StockMetrics.
package signal

import (
	"fmt"
	"time"

	"github.com/aristath/tactical/internal/modules/metrics"
)

// Decision is the outcome of one evaluation.
type Decision struct {
	ID            string               `json:"id" msgpack:"id"`
	Symbol        string               `json:"symbol" msgpack:"symbol"`
	GoodTimeToBuy bool                 `json:"good_time_to_buy" msgpack:"good_time_to_buy"`
	Fundamentals  bool                 `json:"fundamentals" msgpack:"fundamentals"`
	Technicals    bool                 `json:"technicals" msgpack:"technicals"`
	Failed        []string             `json:"failed,omitempty" msgpack:"failed,omitempty"`
	Metrics       metrics.StockMetrics `json:"metrics" msgpack:"metrics"`
	EvaluatedAt   time.Time            `json:"evaluated_at" msgpack:"evaluated_at"`
}

type condition struct {
	name string
	pass bool
}

func (t Thresholds) fundamentalConditions(m metrics.StockMetrics) []condition {
	return []condition{
		{fmt.Sprintf("%s >= %g", metrics.MetricROA, t.MinROA), m.ROA >= t.MinROA},
		{fmt.Sprintf("%s >= %g", metrics.MetricROE, t.MinROE), m.ROE >= t.MinROE},
		{fmt.Sprintf("%s >= %g", metrics.MetricROI, t.MinROI), m.ROI >= t.MinROI},
		{fmt.Sprintf("%s < %g", metrics.MetricPE, t.MaxPE), m.PE < t.MaxPE},
		{fmt.Sprintf("%s <= %g", metrics.MetricDE, t.MaxDE), m.DE <= t.MaxDE},
		{fmt.Sprintf("%s >= %g", metrics.MetricCurrentRatio, t.MinCurrentRatio), m.CurrentRatio >= t.MinCurrentRatio},
		{fmt.Sprintf("%s >= %g", metrics.MetricEPSGrowth, t.MinEPSGrowth), m.EPSGrowth >= t.MinEPSGrowth},
	}
}

// technicalConditions treats an unavailable RSI as failing: a defaulted zero
// would otherwise read as deeply oversold.
func (t Thresholds) technicalConditions(m metrics.StockMetrics) []condition {
	return []condition{
		{fmt.Sprintf("%s < %g", metrics.MetricRSI, t.RSIOversold), !m.IsMissing(metrics.MetricRSI) && m.RSI < t.RSIOversold},
		{fmt.Sprintf("%s < %g", metrics.MetricRecentPerformance, t.MaxRecentPerformance), m.RecentPerformance < t.MaxRecentPerformance},
	}
}

// Evaluate applies the thresholds to a metrics record. It does no I/O; the
// returned Decision has no ID or timestamp.
func Evaluate(m metrics.StockMetrics, t Thresholds) Decision {
	d := Decision{
		Symbol:  m.Symbol,
		Metrics: m,
	}

	d.Fundamentals = collect(t.fundamentalConditions(m), &d.Failed)
	d.Technicals = collect(t.technicalConditions(m), &d.Failed)
	d.GoodTimeToBuy = d.Fundamentals && d.Technicals

	return d
}

func collect(conditions []condition, failed *[]string) bool {
	ok := true
	for _, c := range conditions {
		if !c.pass {
			ok = false
			*failed = append(*failed, c.name)
		}
	}
	return ok
}
