package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSeries(n int, next func(i int, prev float64) float64) []float64 {
	closes := make([]float64, n)
	closes[0] = 100
	for i := 1; i < n; i++ {
		closes[i] = next(i, closes[i-1])
	}
	return closes
}

func TestCalculateRSI_InsufficientData(t *testing.T) {
	closes := makeSeries(90, func(_ int, prev float64) float64 { return prev + 1 })

	assert.Nil(t, CalculateRSI(closes, 90))
	assert.Nil(t, CalculateRSI(nil, 14))
	assert.Nil(t, CalculateRSI(closes, 1))
}

func TestCalculateRSI_FlatSeriesIsNeutral(t *testing.T) {
	closes := makeSeries(120, func(_ int, prev float64) float64 { return prev })

	rsi := CalculateRSI(closes, 90)
	require.NotNil(t, rsi)
	assert.Equal(t, NeutralRSI, *rsi)
}

func TestCalculateRSI_Extremes(t *testing.T) {
	t.Run("only gains", func(t *testing.T) {
		closes := makeSeries(100, func(_ int, prev float64) float64 { return prev + 1 })
		rsi := CalculateRSI(closes, 90)
		require.NotNil(t, rsi)
		assert.InDelta(t, 100.0, *rsi, 1e-9)
	})

	t.Run("only losses", func(t *testing.T) {
		closes := makeSeries(100, func(_ int, prev float64) float64 { return prev - 0.5 })
		rsi := CalculateRSI(closes, 90)
		require.NotNil(t, rsi)
		assert.InDelta(t, 0.0, *rsi, 1e-9)
	})
}

func TestCalculateRSI_AlternatingSeries(t *testing.T) {
	// 90 changes alternating +2 / -1, the first one a gain
	closes := makeSeries(91, func(i int, prev float64) float64 {
		if i%2 == 1 {
			return prev + 2
		}
		return prev - 1
	})

	rsi := CalculateRSI(closes, 90)
	require.NotNil(t, rsi)
	assert.InDelta(t, 81.0332, *rsi, 1e-4)
}

func TestCalculateRSI_CrashThenChop(t *testing.T) {
	// 19 drops of 3, then +1 with -1.6 every third bar: 100 closes, the
	// compact daily window
	closes := makeSeries(100, func(i int, prev float64) float64 {
		if i <= 19 {
			return prev - 3
		}
		if i%3 == 0 {
			return prev - 1.6
		}
		return prev + 1
	})

	rsi := CalculateRSI(closes, 90)
	require.NotNil(t, rsi)
	// exponential smoothing seeded with the first change; a simple-average
	// seed gives 34.65 here and misses the oversold mark
	assert.InDelta(t, 20.1290, *rsi, 1e-4)
	assert.Less(t, *rsi, 30.0)
}

func TestCalculateRSI_Bounded(t *testing.T) {
	series := [][]float64{
		makeSeries(100, func(i int, prev float64) float64 {
			if i%3 == 0 {
				return prev - 3
			}
			return prev + 1.25
		}),
		makeSeries(250, func(i int, prev float64) float64 {
			return prev + float64((i*7)%11) - 5
		}),
		makeSeries(95, func(i int, prev float64) float64 {
			if i > 60 {
				return prev * 0.97
			}
			return prev * 1.01
		}),
	}

	for _, closes := range series {
		rsi := CalculateRSI(closes, 90)
		require.NotNil(t, rsi)
		assert.GreaterOrEqual(t, *rsi, 0.0)
		assert.LessOrEqual(t, *rsi, 100.0)
	}
}

func TestCalculateRSI_ShortPeriod(t *testing.T) {
	closes := []float64{44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42, 45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28}

	rsi := CalculateRSI(closes, 14)
	require.NotNil(t, rsi)
	// seeded with the first change (-0.25), not the 14-change average
	assert.InDelta(t, 50.6574, *rsi, 1e-4)
}
