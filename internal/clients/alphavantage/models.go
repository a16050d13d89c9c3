package alphavantage

import "time"

// Function names used against the query endpoint.
const (
	FunctionOverview        = "OVERVIEW"
	FunctionTimeSeriesDaily = "TIME_SERIES_DAILY"
	timeSeriesDailyKey      = "Time Series (Daily)"
	defaultDailyOutputSize  = "compact" // latest 100 observations
)

// CompanyOverview is the subset of the OVERVIEW response the signal uses,
// plus descriptive fields for logging. Ratio fields are nil when the
// provider omitted them or sent a placeholder such as "None".
type CompanyOverview struct {
	Symbol               string `json:"symbol"`
	AssetType            string `json:"asset_type"`
	Name                 string `json:"name"`
	Exchange             string `json:"exchange"`
	Currency             string `json:"currency"`
	Country              string `json:"country"`
	Sector               string `json:"sector"`
	Industry             string `json:"industry"`
	MarketCapitalization int64  `json:"market_capitalization"`

	ReturnOnAssetsTTM     *float64 `json:"return_on_assets_ttm"`
	ReturnOnEquityTTM     *float64 `json:"return_on_equity_ttm"`
	ReturnOnInvestmentTTM *float64 `json:"return_on_investment_ttm"`
	PERatio               *float64 `json:"pe_ratio"`
	DebtToEquity          *float64 `json:"debt_to_equity"`
	CurrentRatio          *float64 `json:"current_ratio"`
	EPSGrowth5Y           *float64 `json:"eps_growth_5y"`

	EPS              *float64 `json:"eps"`
	DividendYield    *float64 `json:"dividend_yield"`
	Beta             *float64 `json:"beta"`
	FiftyTwoWeekHigh *float64 `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  *float64 `json:"fifty_two_week_low"`
}

// DailyPrice is one bar of the TIME_SERIES_DAILY response.
type DailyPrice struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}
