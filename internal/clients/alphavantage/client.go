// Package alphavantage provides a client for the Alpha Vantage query API.
// Only the two functions the buy signal needs are implemented: the company
// overview and the daily time series.
package alphavantage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL           = "https://www.alphavantage.co/query"
	DefaultTimeout           = 30 * time.Second
	DefaultDailyLimit        = 25 // free tier
	DefaultRequestsPerMinute = 5  // free tier

	maxResponseBytes = 16 << 20
)

// Client is the Alpha Vantage API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger

	mu            sync.Mutex
	dailyLimit    int
	requestsToday int
	resetAt       time.Time
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithDailyLimit sets the local daily request quota. Zero or less disables it.
func WithDailyLimit(limit int) ClientOption {
	return func(c *Client) {
		c.dailyLimit = limit
	}
}

// WithRequestsPerMinute sets the request pacing. Zero or less disables it.
func WithRequestsPerMinute(n int) ClientOption {
	return func(c *Client) {
		if n <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(float64(n)/60.0), n)
	}
}

// NewClient creates a new Alpha Vantage client
func NewClient(apiKey string, log zerolog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter:    rate.NewLimiter(rate.Limit(float64(DefaultRequestsPerMinute)/60.0), DefaultRequestsPerMinute),
		log:        log.With().Str("client", "alphavantage").Logger(),
		dailyLimit: DefaultDailyLimit,
		resetAt:    nextMidnightUTC(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetCompanyOverview fetches the OVERVIEW function for a symbol.
// An empty overview (the provider's answer for funds and unknown tickers) is
// returned with every field unset rather than as an error.
func (c *Client) GetCompanyOverview(ctx context.Context, symbol string) (*CompanyOverview, error) {
	body, err := c.doRequest(ctx, FunctionOverview, symbol, nil)
	if err != nil {
		return nil, err
	}

	overview, err := parseCompanyOverview(body)
	if err != nil {
		return nil, err
	}
	if overview.Symbol == "" {
		c.log.Warn().Str("symbol", symbol).Msg("Empty company overview")
	}

	return overview, nil
}

// GetDailyPrices fetches TIME_SERIES_DAILY for a symbol, newest bar first.
func (c *Client) GetDailyPrices(ctx context.Context, symbol string) ([]DailyPrice, error) {
	params := url.Values{}
	params.Set("outputsize", defaultDailyOutputSize)

	body, err := c.doRequest(ctx, FunctionTimeSeriesDaily, symbol, params)
	if err != nil {
		return nil, err
	}

	prices, err := parseDailyTimeSeries(body)
	if err != nil {
		return nil, err
	}

	c.log.Debug().
		Str("symbol", symbol).
		Int("bars", len(prices)).
		Msg("Fetched daily prices")

	return prices, nil
}

// GetRemainingRequests returns how many requests the local daily quota still
// allows, or -1 when the quota is disabled.
func (c *Client) GetRemainingRequests() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rollDayLocked(time.Now())
	if c.dailyLimit <= 0 {
		return -1
	}
	return c.dailyLimit - c.requestsToday
}

// checkRateLimit consumes one request from the daily quota.
func (c *Client) checkRateLimit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rollDayLocked(time.Now())
	if c.dailyLimit > 0 && c.requestsToday >= c.dailyLimit {
		return ErrRateLimitExceeded{Message: fmt.Sprintf("daily quota of %d requests used", c.dailyLimit)}
	}
	c.requestsToday++
	return nil
}

func (c *Client) rollDayLocked(now time.Time) {
	if !now.Before(c.resetAt) {
		c.requestsToday = 0
		c.resetAt = nextMidnightUTC()
	}
}

func (c *Client) doRequest(ctx context.Context, function, symbol string, params url.Values) ([]byte, error) {
	// pace first so a cancelled wait never costs quota
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("alphavantage %s: %w", function, ctxErr)
		}
		// the next slot lies past the context deadline
		return nil, ErrRateLimitExceeded{Message: err.Error()}
	}
	if err := c.checkRateLimit(); err != nil {
		return nil, err
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("function", function)
	params.Set("symbol", symbol)
	params.Set("apikey", c.apiKey)

	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug().
		Str("function", function).
		Str("symbol", symbol).
		Msg("Making Alpha Vantage request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Function: function, Err: redactURLError(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Function: function, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{
			Function:   function,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("body: %s", truncate(string(body), 200)),
		}
	}

	if err := c.checkAPIError(body); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && strings.Contains(apiErr.Message, "Invalid API call") {
			return nil, ErrSymbolNotFound{Symbol: symbol}
		}
		return nil, err
	}

	c.log.Debug().
		Str("function", function).
		Str("symbol", symbol).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("Alpha Vantage request completed")

	return body, nil
}

// checkAPIError detects the provider's in-band errors. Alpha Vantage answers
// throttling, bad keys and bad symbols with HTTP 200 and a single-key body.
func (c *Client) checkAPIError(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if bytes.Contains(trimmed, []byte("Thank you for using Alpha Vantage")) && !bytes.HasPrefix(trimmed, []byte("{")) {
		return ErrRateLimitExceeded{Message: string(trimmed)}
	}

	var envelope struct {
		Note         string `json:"Note"`
		Information  string `json:"Information"`
		ErrorMessage string `json:"Error Message"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		// Not an envelope; the parser reports the shape problem.
		return nil
	}

	switch {
	case envelope.Note != "":
		return ErrRateLimitExceeded{Message: envelope.Note}
	case envelope.ErrorMessage != "":
		if strings.Contains(strings.ToLower(envelope.ErrorMessage), "apikey") {
			return ErrInvalidAPIKey{}
		}
		return &APIError{Message: envelope.ErrorMessage}
	case envelope.Information != "":
		info := strings.ToLower(envelope.Information)
		switch {
		case strings.Contains(info, "rate limit") || strings.Contains(info, "requests per day") || strings.Contains(info, "call frequency"):
			return ErrRateLimitExceeded{Message: envelope.Information}
		case strings.Contains(info, "api key") || strings.Contains(info, "apikey"):
			return ErrInvalidAPIKey{}
		default:
			return &APIError{Message: envelope.Information}
		}
	}

	return nil
}

// redactURLError strips the query string, which carries the API key, from
// transport errors before they reach logs.
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
			u.RawQuery = ""
			urlErr.URL = u.String()
		}
		return urlErr
	}
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func nextMidnightUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
}
