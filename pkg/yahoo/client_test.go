package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL))
}

func TestGetQuote(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/QQQ", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("range"))
		w.Write([]byte(`{"chart": {"result": [{
			"meta": {"regularMarketPrice": 440, "previousClose": 400, "marketCap": 250000000000, "regularMarketTime": 1760650000},
			"timestamp": [1760650000],
			"indicators": {"quote": [{"close": [440], "volume": [3100]}]}
		}], "error": null}}`))
	})

	q, err := c.GetQuote(context.Background(), "QQQ")
	require.NoError(t, err)
	assert.Equal(t, 440.0, q.Price)
	assert.Equal(t, 40.0, q.Change)
	assert.Equal(t, 10.0, q.ChangePercent)
	assert.Equal(t, int64(3100), q.Volume)
	assert.Equal(t, 250000000000.0, q.MarketCap)
	assert.Equal(t, "yahoo", q.Source)
	assert.Equal(t, int64(1760650000), q.LastUpdated.Unix())
}

func TestGetQuoteErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`))
	})
	_, err := c.GetQuote(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, ErrNoData)

	missing := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err = missing.GetQuote(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, ErrNoData)

	down := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	_, err = down.GetQuote(context.Background(), "SPY")
	assert.ErrorContains(t, err, "status 429")
	assert.NotErrorIs(t, err, ErrNoData)
}

func TestSymbolIsPathEscaped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/SPY?range=max/x", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := c.GetQuote(context.Background(), "SPY?range=max/x")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestGetHistoricalPricesDropsGaps(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "30d", r.URL.Query().Get("range"))
		w.Write([]byte(`{"chart": {"result": [{
			"meta": {"regularMarketPrice": 101},
			"indicators": {"quote": [{"close": [100, null, 102.5, 0]}]}
		}]}}`))
	})
	got, err := c.GetHistoricalPrices(context.Background(), "SPY", 30)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 102.5}, got)
}
