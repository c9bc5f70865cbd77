package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"macromatch-go-api/internal/models"
)

const (
	defaultBaseURL           = "https://www.alphavantage.co/query"
	defaultRequestsPerMinute = 5
	userAgent                = "MacroMatch/1.0"
)

var (
	// ErrRateLimited is returned when the API answers with a throttling note
	// instead of data.
	ErrRateLimited = errors.New("alpha vantage rate limit reached")
	ErrNoData      = errors.New("alpha vantage returned no data")
)

// Economic series functions.
const (
	FunctionWTI           = "WTI"
	FunctionTreasuryYield = "TREASURY_YIELD"
	FunctionRealGDP       = "REAL_GDP"
	FunctionUnemployment  = "UNEMPLOYMENT"
)

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRequestsPerMinute sizes the client-side token bucket. Zero or less
// disables throttling.
func WithRequestsPerMinute(n int) Option {
	return func(c *Client) {
		if n <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), n)
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	WithRequestsPerMinute(defaultRequestsPerMinute)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasKey reports whether an API key is configured.
func (c *Client) HasKey() bool { return c.apiKey != "" }

type envelope struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("apikey", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("alpha vantage returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}
	switch {
	case env.ErrorMessage != "":
		return fmt.Errorf("alpha vantage error: %s", env.ErrorMessage)
	case env.Note != "", env.Information != "":
		return ErrRateLimited
	}

	return json.Unmarshal(body, out)
}

type GlobalQuoteResponse struct {
	GlobalQuote struct {
		Symbol           string `json:"01. symbol"`
		Price            string `json:"05. price"`
		Change           string `json:"09. change"`
		ChangePercent    string `json:"10. change percent"`
		Volume           string `json:"06. volume"`
		MarketCap        string `json:"08. market cap"`
		LatestTradingDay string `json:"07. latest trading day"`
	} `json:"Global Quote"`
}

func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.TickerData, error) {
	var quoteResp GlobalQuoteResponse
	err := c.get(ctx, url.Values{"function": {"GLOBAL_QUOTE"}, "symbol": {symbol}}, &quoteResp)
	if err != nil {
		return nil, err
	}

	q := quoteResp.GlobalQuote
	if q.Symbol == "" {
		return nil, fmt.Errorf("%w for symbol %s", ErrNoData, symbol)
	}

	price, _ := strconv.ParseFloat(q.Price, 64)
	change, _ := strconv.ParseFloat(q.Change, 64)
	volume, _ := strconv.ParseInt(q.Volume, 10, 64)
	marketCap, _ := strconv.ParseFloat(q.MarketCap, 64)

	changePercent, err := strconv.ParseFloat(strings.TrimSuffix(q.ChangePercent, "%"), 64)
	if err != nil && price-change != 0 {
		changePercent = (change / (price - change)) * 100
	}

	updated := time.Now()
	if day, err := time.Parse("2006-01-02", q.LatestTradingDay); err == nil {
		updated = day
	}

	return &models.TickerData{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        volume,
		MarketCap:     marketCap,
		LastUpdated:   updated,
		Source:        "alphavantage",
	}, nil
}

// Observation is one dated value of a series, newest first in results.
type Observation struct {
	Date  string
	Value float64
}

// GetDailyCloses returns the daily closes of symbol, newest first.
func (c *Client) GetDailyCloses(ctx context.Context, symbol string) ([]Observation, error) {
	var resp struct {
		TimeSeries map[string]struct {
			Close string `json:"4. close"`
		} `json:"Time Series (Daily)"`
	}
	if err := c.get(ctx, url.Values{"function": {"TIME_SERIES_DAILY"}, "symbol": {symbol}}, &resp); err != nil {
		return nil, err
	}
	if len(resp.TimeSeries) == 0 {
		return nil, fmt.Errorf("%w for symbol %s", ErrNoData, symbol)
	}

	out := make([]Observation, 0, len(resp.TimeSeries))
	for date, bar := range resp.TimeSeries {
		v, err := strconv.ParseFloat(bar.Close, 64)
		if err != nil {
			continue
		}
		out = append(out, Observation{Date: date, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// GetExchangeRate returns the realtime rate from one currency to another.
func (c *Client) GetExchangeRate(ctx context.Context, from, to string) (float64, error) {
	var resp struct {
		Rate struct {
			ExchangeRate string `json:"5. Exchange Rate"`
		} `json:"Realtime Currency Exchange Rate"`
	}
	params := url.Values{
		"function":      {"CURRENCY_EXCHANGE_RATE"},
		"from_currency": {from},
		"to_currency":   {to},
	}
	if err := c.get(ctx, params, &resp); err != nil {
		return 0, err
	}
	if resp.Rate.ExchangeRate == "" {
		return 0, fmt.Errorf("%w for %s/%s", ErrNoData, from, to)
	}
	return strconv.ParseFloat(resp.Rate.ExchangeRate, 64)
}

// GetEconomicSeries fetches one of the economic indicator functions. Extra
// holds function specific parameters such as interval or maturity. Missing
// observations ("." in the feed) are skipped.
func (c *Client) GetEconomicSeries(ctx context.Context, function string, extra map[string]string) ([]Observation, error) {
	params := url.Values{"function": {function}}
	for k, v := range extra {
		params.Set(k, v)
	}

	var resp struct {
		Data []struct {
			Date  string `json:"date"`
			Value string `json:"value"`
		} `json:"data"`
	}
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}

	out := make([]Observation, 0, len(resp.Data))
	for _, d := range resp.Data {
		v, err := strconv.ParseFloat(d.Value, 64)
		if err != nil {
			continue
		}
		out = append(out, Observation{Date: d.Date, Value: v})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoData, function)
	}
	return out, nil
}
