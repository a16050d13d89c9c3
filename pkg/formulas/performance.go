package formulas

import (
	"github.com/markcheno/go-talib"
)

// PercentChange returns the percentage change from the close `lookback`
// observations back (counting the latest as the first) to the latest close:
//
//	(closes[n-1] - closes[n-lookback]) / closes[n-lookback] * 100
//
// closes must be ordered oldest first. Returns nil when the series is shorter
// than lookback or the reference close is zero.
func PercentChange(closes []float64, lookback int) *float64 {
	if lookback < 1 || len(closes) < lookback {
		return nil
	}

	// talib.Roc reports 0 for a zero base
	if closes[len(closes)-lookback] == 0 {
		return nil
	}

	roc := talib.Roc(closes, lookback-1)
	change := roc[len(roc)-1]
	return &change
}
