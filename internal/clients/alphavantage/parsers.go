package alphavantage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// placeholder values the provider uses for "no data"
var missingValues = map[string]bool{
	"":     true,
	"None": true,
	"none": true,
	"null": true,
	"-":    true,
	"N/A":  true,
}

// parseFloat64 parses a provider number, returning 0 for placeholders and garbage.
func parseFloat64(s string) float64 {
	if v := parseFloat64Ptr(s); v != nil {
		return *v
	}
	return 0
}

// parseFloat64Ptr parses a provider number, returning nil when the value is absent.
func parseFloat64Ptr(s string) *float64 {
	s = strings.TrimSpace(s)
	if missingValues[s] {
		return nil
	}
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseInt64 parses integers, accepting exponent and decimal notation by truncation.
func parseInt64(s string) int64 {
	s = strings.TrimSpace(s)
	if missingValues[s] {
		return 0
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(v)
	}
	return 0
}

// parseDate parses a YYYY-MM-DD date in UTC. Returns the zero time on failure.
func parseDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

// overviewField reads a key from the raw overview, accepting both string and
// number encodings. ok is false when the key is absent or null.
func overviewField(raw map[string]json.RawMessage, key string) (string, bool) {
	value, ok := raw[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s, true
	}
	text := strings.TrimSpace(string(value))
	if text == "null" {
		return "", false
	}
	return text, true
}

func overviewFloat(raw map[string]json.RawMessage, key string) *float64 {
	s, ok := overviewField(raw, key)
	if !ok {
		return nil
	}
	return parseFloat64Ptr(s)
}

func overviewString(raw map[string]json.RawMessage, key string) string {
	s, _ := overviewField(raw, key)
	return s
}

func parseCompanyOverview(data []byte) (*CompanyOverview, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedResponseError{Function: FunctionOverview, Reason: "invalid JSON object", Err: err}
	}

	marketCap, _ := overviewField(raw, "MarketCapitalization")

	return &CompanyOverview{
		Symbol:               overviewString(raw, "Symbol"),
		AssetType:            overviewString(raw, "AssetType"),
		Name:                 overviewString(raw, "Name"),
		Exchange:             overviewString(raw, "Exchange"),
		Currency:             overviewString(raw, "Currency"),
		Country:              overviewString(raw, "Country"),
		Sector:               overviewString(raw, "Sector"),
		Industry:             overviewString(raw, "Industry"),
		MarketCapitalization: parseInt64(marketCap),

		ReturnOnAssetsTTM:     overviewFloat(raw, "ReturnOnAssetsTTM"),
		ReturnOnEquityTTM:     overviewFloat(raw, "ReturnOnEquityTTM"),
		ReturnOnInvestmentTTM: overviewFloat(raw, "ReturnOnInvestmentTTM"),
		PERatio:               overviewFloat(raw, "PERatio"),
		DebtToEquity:          overviewFloat(raw, "DebtToEquity"),
		CurrentRatio:          overviewFloat(raw, "CurrentRatio"),
		EPSGrowth5Y:           overviewFloat(raw, "EPSGrowth5Y"),

		EPS:              overviewFloat(raw, "EPS"),
		DividendYield:    overviewFloat(raw, "DividendYield"),
		Beta:             overviewFloat(raw, "Beta"),
		FiftyTwoWeekHigh: overviewFloat(raw, "52WeekHigh"),
		FiftyTwoWeekLow:  overviewFloat(raw, "52WeekLow"),
	}, nil
}

type dailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// parseDailyTimeSeries decodes the daily series sorted newest first.
// A bar whose date or close cannot be read fails the whole response: a
// defaulted close would silently corrupt every derived metric.
func parseDailyTimeSeries(data []byte) ([]DailyPrice, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &MalformedResponseError{Function: FunctionTimeSeriesDaily, Reason: "invalid JSON object", Err: err}
	}

	series, ok := envelope[timeSeriesDailyKey]
	if !ok {
		return nil, &MalformedResponseError{Function: FunctionTimeSeriesDaily, Reason: fmt.Sprintf("missing %q", timeSeriesDailyKey)}
	}

	var bars map[string]dailyBar
	if err := json.Unmarshal(series, &bars); err != nil {
		return nil, &MalformedResponseError{Function: FunctionTimeSeriesDaily, Reason: "invalid daily bars", Err: err}
	}

	prices := make([]DailyPrice, 0, len(bars))
	for day, bar := range bars {
		date := parseDate(day)
		if date.IsZero() {
			return nil, &MalformedResponseError{Function: FunctionTimeSeriesDaily, Reason: fmt.Sprintf("invalid date %q", day)}
		}
		closePrice := parseFloat64Ptr(bar.Close)
		if closePrice == nil {
			return nil, &MalformedResponseError{Function: FunctionTimeSeriesDaily, Reason: fmt.Sprintf("invalid close %q on %s", bar.Close, day)}
		}

		prices = append(prices, DailyPrice{
			Date:   date,
			Open:   parseFloat64(bar.Open),
			High:   parseFloat64(bar.High),
			Low:    parseFloat64(bar.Low),
			Close:  *closePrice,
			Volume: parseInt64(bar.Volume),
		})
	}

	sort.Slice(prices, func(i, j int) bool {
		return prices[i].Date.After(prices[j].Date)
	})

	return prices, nil
}
