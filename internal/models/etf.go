package models

// RiskLevel is a qualitative risk tier shared by ETF metadata and scores.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ETF combines static fund metadata with the latest market data. Market
// fields are nil when no quote is available.
type ETF struct {
	ID                 string    `json:"id"`
	Symbol             string    `json:"symbol"`
	Name               string    `json:"name"`
	Category           string    `json:"category"`
	Price              *float64  `json:"price"`
	ChangeRate         *float64  `json:"changeRate"`
	Volume             *int64    `json:"volume"`
	MarketCap          *float64  `json:"marketCap"`
	Expense            float64   `json:"expense"`
	Description        string    `json:"description"`
	Risk               RiskLevel `json:"risk"`
	CorrelationFactors []string  `json:"correlationFactors"`
}

// ETFQuery filters, orders and pages the catalog listing.
type ETFQuery struct {
	Search   string `query:"search"`
	Category string `query:"category" default:"all"`
	Risk     string `query:"risk" default:"all" validate:"oneof=all low medium high"`
	Sort     string `query:"sort" validate:"omitempty,oneof=recommended performance volume expense"`
	Page     int    `query:"page" default:"1" validate:"min=1"`
}

// ETFPage is one page of the filtered catalog.
type ETFPage struct {
	Items      []ETF `json:"items"`
	Total      int   `json:"total"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	Pages      []int `json:"pages"`
}
