package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/entity"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/logger"
)

const (
	// DefaultBaseURL is the exchangerate-api.com v4 endpoint
	DefaultBaseURL = "https://api.exchangerate-api.com/v4"
	historicalPath = "/historical/%s/%s"
	latestPath     = "/latest/%s"
)

// ExchangeRateAPIClient fetches historical and latest rates from an exchangerate-api style service
type ExchangeRateAPIClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     logger.Logger
}

// Option configures an ExchangeRateAPIClient
type Option func(*ExchangeRateAPIClient)

// WithBaseURL overrides the provider base URL
func WithBaseURL(baseURL string) Option {
	return func(c *ExchangeRateAPIClient) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithRateLimit throttles outbound requests to rps per second. Zero or less disables throttling.
func WithRateLimit(rps float64) Option {
	return func(c *ExchangeRateAPIClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewExchangeRateAPIClient creates a new provider client. A nil httpClient uses a client
// without timeout so the transport defaults apply.
func NewExchangeRateAPIClient(httpClient *http.Client, log logger.Logger, opts ...Option) *ExchangeRateAPIClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	c := &ExchangeRateAPIClient{
		baseURL:    DefaultBaseURL,
		httpClient: httpClient,
		logger:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RatesResponse represents the response structure shared by the historical and latest endpoints
type RatesResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// FetchHistoricalRate retrieves the base->currency rate for the exact date
func (c *ExchangeRateAPIClient) FetchHistoricalRate(ctx context.Context, base, currency string, date time.Time) (*entity.ExchangeRate, error) {
	path := fmt.Sprintf(historicalPath, url.PathEscape(base), entity.RateKey(date))

	exchangeRate, err := c.fetch(ctx, path, base, currency, date)
	if err != nil {
		return nil, err
	}
	exchangeRate.Source = entity.RateSourceHistorical
	return exchangeRate, nil
}

// FetchLatestRate retrieves the current base->currency rate
func (c *ExchangeRateAPIClient) FetchLatestRate(ctx context.Context, base, currency string) (*entity.ExchangeRate, error) {
	path := fmt.Sprintf(latestPath, url.PathEscape(base))

	today := time.Now().UTC().Truncate(24 * time.Hour)
	exchangeRate, err := c.fetch(ctx, path, base, currency, today)
	if err != nil {
		return nil, err
	}
	exchangeRate.Source = entity.RateSourceLatest
	return exchangeRate, nil
}

// fetch performs one GET and extracts rates[currency]. fallbackDate is used when the
// response carries no parseable date.
func (c *ExchangeRateAPIClient) fetch(ctx context.Context, path, base, currency string, fallbackDate time.Time) (*entity.ExchangeRate, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	reqURL := c.baseURL + path

	c.logger.Debug("Exchange rate API request", map[string]interface{}{
		"url": reqURL,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Error closing response body", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("Exchange rate API response", map[string]interface{}{
		"url":    reqURL,
		"status": resp.StatusCode,
	})

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned error status: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var ratesResp RatesResponse
	if err := json.Unmarshal(bodyBytes, &ratesResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	value, ok := ratesResp.Rates[currency]
	if !ok || value <= 0 {
		return nil, fmt.Errorf("invalid API response format: no %s rate", currency)
	}

	rateDate := fallbackDate
	if parsed, err := time.Parse(entity.RateKeyFormat, ratesResp.Date); err == nil {
		rateDate = parsed
	}

	return &entity.ExchangeRate{
		Base:     base,
		Currency: currency,
		Date:     rateDate,
		Rate:     value,
	}, nil
}
