package models

type RebalanceFrequency string

const (
	RebalanceMonthly   RebalanceFrequency = "monthly"
	RebalanceQuarterly RebalanceFrequency = "quarterly"
	RebalanceYearly    RebalanceFrequency = "yearly"
)

// SimulationSettings is the user's portfolio setup. Allocation maps an ETF
// symbol to its weight in percent.
type SimulationSettings struct {
	StartDate          string             `json:"startDate" default:"2020-01-01" validate:"required,datetime=2006-01-02"`
	EndDate            string             `json:"endDate" default:"2024-01-01" validate:"required,datetime=2006-01-02"`
	InitialInvestment  float64            `json:"initialInvestment" default:"10000" validate:"gt=0,lte=1000000000000"`
	RebalanceFrequency RebalanceFrequency `json:"rebalanceFrequency" default:"quarterly" validate:"oneof=monthly quarterly yearly"`
	SelectedETFs       []string           `json:"selectedEtfs" validate:"required,min=1,max=50,dive,required"`
	Allocation         map[string]float64 `json:"allocation" validate:"required"`
	Seed               *int64             `json:"seed,omitempty"`
}

type PerformancePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type BacktestResult struct {
	StrategyID       string             `json:"strategyId"`
	Period           Period             `json:"period"`
	TotalReturn      float64            `json:"totalReturn"`
	AnnualizedReturn float64            `json:"annualizedReturn"`
	Volatility       float64            `json:"volatility"`
	MaxDrawdown      float64            `json:"maxDrawdown"`
	SharpeRatio      float64            `json:"sharpeRatio"`
	PerformanceData  []PerformancePoint `json:"performanceData"`
}
