package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentChange(t *testing.T) {
	closes := make([]float64, 100)
	for i := range closes {
		closes[i] = 50 + float64(i)*0.75
	}

	change := PercentChange(closes, 30)
	require.NotNil(t, change)

	latest := closes[len(closes)-1]
	prior := closes[len(closes)-30]
	assert.InDelta(t, (latest-prior)/prior*100, *change, 1e-9)
}

func TestPercentChange_ExactlyLookback(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
	}
	closes[29] = 90

	change := PercentChange(closes, 30)
	require.NotNil(t, change)
	assert.InDelta(t, -10.0, *change, 1e-9)
}

func TestPercentChange_Unavailable(t *testing.T) {
	tests := []struct {
		name     string
		closes   []float64
		lookback int
	}{
		{"too short", make([]float64, 29), 30},
		{"empty", nil, 30},
		{"zero lookback", []float64{1, 2, 3}, 0},
		{"zero reference", []float64{0, 1, 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, PercentChange(tt.closes, tt.lookback))
		})
	}
}

func TestPercentChange_SingleObservationLookback(t *testing.T) {
	change := PercentChange([]float64{10, 20, 40}, 1)
	require.NotNil(t, change)
	assert.Equal(t, 0.0, *change)
}
