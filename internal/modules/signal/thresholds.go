package signal

// Thresholds is the fixed buy policy. Fundamental conditions must all hold,
// and both technical conditions must hold.
type Thresholds struct {
	MinROA               float64 `json:"min_roa" msgpack:"min_roa"`                               // ROA >= MinROA
	MinROE               float64 `json:"min_roe" msgpack:"min_roe"`                               // ROE >= MinROE
	MinROI               float64 `json:"min_roi" msgpack:"min_roi"`                               // ROI >= MinROI
	MaxPE                float64 `json:"max_pe" msgpack:"max_pe"`                                 // P/E < MaxPE
	MaxDE                float64 `json:"max_de" msgpack:"max_de"`                                 // D/E <= MaxDE
	MinCurrentRatio      float64 `json:"min_current_ratio" msgpack:"min_current_ratio"`           // Current Ratio >= MinCurrentRatio
	MinEPSGrowth         float64 `json:"min_eps_growth" msgpack:"min_eps_growth"`                 // EPS Growth >= MinEPSGrowth
	RSIOversold          float64 `json:"rsi_oversold" msgpack:"rsi_oversold"`                     // RSI < RSIOversold
	MaxRecentPerformance float64 `json:"max_recent_performance" msgpack:"max_recent_performance"` // Recent Performance < MaxRecentPerformance
}

// DefaultThresholds returns the policy the signal is defined by.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinROA:               5.0,
		MinROE:               10.0,
		MinROI:               7.0,
		MaxPE:                20,
		MaxDE:                1.0,
		MinCurrentRatio:      1.5,
		MinEPSGrowth:         5.0,
		RSIOversold:          30,
		MaxRecentPerformance: -5.0, // underperformed by more than 5%
	}
}
