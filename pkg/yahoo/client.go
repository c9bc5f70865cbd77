package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"macromatch-go-api/internal/models"
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// ErrNoData is returned when Yahoo has nothing for a symbol, usually because
// it does not exist or was delisted.
var ErrNoData = errors.New("yahoo finance returned no data")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type ChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice  float64 `json:"regularMarketPrice"`
				PreviousClose       float64 `json:"previousClose"`
				ChartPreviousClose  float64 `json:"chartPreviousClose"`
				RegularMarketVolume int64   `json:"regularMarketVolume"`
				RegularMarketTime   int64   `json:"regularMarketTime"`
				MarketCap           float64 `json:"marketCap"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *Client) chart(ctx context.Context, symbol, rangeParam string) (*ChartResponse, error) {
	query := url.Values{"interval": {"1d"}, "range": {rangeParam}}
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(symbol), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w for symbol %s", ErrNoData, symbol)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo finance returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var chartResp ChartResponse
	if err := json.Unmarshal(body, &chartResp); err != nil {
		return nil, err
	}
	if e := chartResp.Chart.Error; e != nil {
		if e.Code == "Not Found" {
			return nil, fmt.Errorf("%w for symbol %s: %s", ErrNoData, symbol, e.Description)
		}
		return nil, fmt.Errorf("yahoo finance error %s: %s", e.Code, e.Description)
	}
	if len(chartResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w for symbol %s", ErrNoData, symbol)
	}
	return &chartResp, nil
}

func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.TickerData, error) {
	chartResp, err := c.chart(ctx, symbol, "1d")
	if err != nil {
		return nil, err
	}

	result := chartResp.Chart.Result[0]
	price := result.Meta.RegularMarketPrice
	previousClose := result.Meta.PreviousClose
	if previousClose == 0 {
		previousClose = result.Meta.ChartPreviousClose
	}
	if price == 0 {
		return nil, fmt.Errorf("%w: no price for symbol %s", ErrNoData, symbol)
	}

	change := price - previousClose
	changePercent := 0.0
	if previousClose > 0 {
		changePercent = (change / previousClose) * 100
	}

	volume := result.Meta.RegularMarketVolume
	if volume == 0 && len(result.Indicators.Quote) > 0 {
		if vols := result.Indicators.Quote[0].Volume; len(vols) > 0 && vols[0] != nil {
			volume = *vols[0]
		}
	}

	updated := time.Now()
	if result.Meta.RegularMarketTime > 0 {
		updated = time.Unix(result.Meta.RegularMarketTime, 0).UTC()
	}

	return &models.TickerData{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        volume,
		MarketCap:     result.Meta.MarketCap,
		LastUpdated:   updated,
		Source:        "yahoo",
	}, nil
}

// GetHistoricalPrices returns daily closes for the last days, oldest first.
// Gaps in the feed are dropped.
func (c *Client) GetHistoricalPrices(ctx context.Context, symbol string, days int) ([]float64, error) {
	chartResp, err := c.chart(ctx, symbol, fmt.Sprintf("%dd", days))
	if err != nil {
		return nil, err
	}

	quotes := chartResp.Chart.Result[0].Indicators.Quote
	if len(quotes) == 0 {
		return nil, fmt.Errorf("%w: no history for %s", ErrNoData, symbol)
	}

	var prices []float64
	for _, p := range quotes[0].Close {
		if p != nil && *p > 0 {
			prices = append(prices, *p)
		}
	}
	return prices, nil
}
