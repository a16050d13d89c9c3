// Package formulas holds the price-series calculations behind the buy signal.
package formulas

import (
	"gonum.org/v1/gonum/floats"
)

// NeutralRSI is reported for a series with no gains and no losses.
const NeutralRSI = 50.0

// CalculateRSI calculates the Relative Strength Index
//
// RSI Formula:
//
//	RSI = 100 - (100 / (1 + RS))
//	where RS = smoothed gain / smoothed loss
//
// Gains and losses are smoothed with an exponential average, alpha = 1/length,
// seeded with the first change (no simple-average warm-up). On a short series
// the seed matters: talib's Wilder RSI averages the first length changes
// instead and can land on the other side of 30.
//
// Args:
//
//	closes: closing prices, oldest first
//	length: RSI period
//
// Returns:
//
//	Current RSI value (0-100) or nil if insufficient data
func CalculateRSI(closes []float64, length int) *float64 {
	if length < 2 || len(closes) < length+1 {
		return nil
	}

	if floats.Max(closes) == floats.Min(closes) {
		neutral := NeutralRSI
		return &neutral
	}

	alpha := 1.0 / float64(length)

	var avgGain, avgLoss float64
	for i := 1; i < len(closes); i++ {
		var gain, loss float64
		change := closes[i] - closes[i-1]
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}

		if i == 1 {
			avgGain, avgLoss = gain, loss
			continue
		}
		avgGain += alpha * (gain - avgGain)
		avgLoss += alpha * (loss - avgLoss)
	}

	result := 100.0
	if avgLoss != 0 {
		result = 100 - (100 / (1 + avgGain/avgLoss))
	}
	return &result
}
