package testing

import (
	"time"

	"github.com/aristath/tactical/internal/clients/alphavantage"
)

func ptr(v float64) *float64 {
	return &v
}

// NewOverviewFixture returns an overview that passes every fundamental threshold.
func NewOverviewFixture(symbol string) *alphavantage.CompanyOverview {
	return &alphavantage.CompanyOverview{
		Symbol:                symbol,
		AssetType:             "Common Stock",
		Name:                  symbol + " Corp",
		Exchange:              "NASDAQ",
		Currency:              "USD",
		ReturnOnAssetsTTM:     ptr(8.0),
		ReturnOnEquityTTM:     ptr(15.0),
		ReturnOnInvestmentTTM: ptr(9.0),
		PERatio:               ptr(14.0),
		DebtToEquity:          ptr(0.6),
		CurrentRatio:          ptr(2.1),
		EPSGrowth5Y:           ptr(12.0),
	}
}

// NewDailyPriceFixtures turns chronological closes into bars ordered newest
// first, the order the client returns them in. The last close is dated 2024-06-28.
func NewDailyPriceFixtures(closes []float64) []alphavantage.DailyPrice {
	last := time.Date(2024, time.June, 28, 0, 0, 0, 0, time.UTC)
	prices := make([]alphavantage.DailyPrice, len(closes))
	for i := range closes {
		age := len(closes) - 1 - i
		c := closes[i]
		prices[age] = alphavantage.DailyPrice{
			Date:   last.AddDate(0, 0, -age),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return prices
}

// NewDecliningCloses returns n closes that fall steadily by step from start,
// giving a low RSI and a negative recent performance.
func NewDecliningCloses(n int, start, step float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start - float64(i)*step
	}
	return closes
}
