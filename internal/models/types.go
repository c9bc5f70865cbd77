package models

import "time"

// TickerData represents market data for a ticker
type TickerData struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Volume        int64     `json:"volume"`
	MarketCap     float64   `json:"marketCap"`
	LastUpdated   time.Time `json:"lastUpdated"`
	Source        string    `json:"source"` // "alphavantage" or "yahoo"
}

// IndicatorSnapshot is the set of macro readings handed to the scoring engine.
type IndicatorSnapshot struct {
	Indicators  []Indicator `json:"indicators"`
	Source      string      `json:"source"` // "live" or "fallback"
	Cached      bool        `json:"cached"`
	LastUpdated time.Time   `json:"lastUpdated"`
}

const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Code    int               `json:"code"`
	Details []ValidationError `json:"details,omitempty"`
}

// ValidationError describes one rejected request field.
type ValidationError struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}
