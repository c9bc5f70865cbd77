package models

type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

type Recommendation string

const (
	RecommendBuy  Recommendation = "buy"
	RecommendHold Recommendation = "hold"
	RecommendSell Recommendation = "sell"
)

// Outlook is the market-wide mood, rendered verbatim by clients.
type Outlook string

const (
	OutlookPositive Outlook = "긍정적"
	OutlookNegative Outlook = "부정적"
	OutlookNeutral  Outlook = "중립적"
)

type RecommendationResult struct {
	Symbol         string         `json:"symbol"`
	Recommendation Recommendation `json:"recommendation"`
	Score          float64        `json:"score"`
	Reasons        []string       `json:"reasons"`
	RiskLevel      RiskLevel      `json:"riskLevel"`
	Summary        string         `json:"summary"`
	MarketOutlook  Outlook        `json:"marketOutlook"`
}

type DetailAnalysis struct {
	TechnicalAnalysis   string   `json:"technicalAnalysis"`
	FundamentalAnalysis string   `json:"fundamentalAnalysis"`
	RiskFactors         []string `json:"riskFactors"`
	Opportunities       []string `json:"opportunities"`
}

// ETFAnalysis is the response for the detail view of one ETF.
type ETFAnalysis struct {
	ETF            ETF                  `json:"etf"`
	Recommendation RecommendationResult `json:"recommendation"`
	Analysis       DetailAnalysis       `json:"analysis"`
}
