package models

type ScenarioType string

const (
	ScenarioOptimistic  ScenarioType = "optimistic"
	ScenarioRealistic   ScenarioType = "realistic"
	ScenarioPessimistic ScenarioType = "pessimistic"
)

var ScenarioTypes = []ScenarioType{ScenarioOptimistic, ScenarioRealistic, ScenarioPessimistic}

// ForecastPoint is one weekly sample of a scenario path.
type ForecastPoint struct {
	Date       string  `json:"date"`
	Value      float64 `json:"value"`
	UpperBound float64 `json:"upperBound"`
	LowerBound float64 `json:"lowerBound"`
}

type PredictionScenario struct {
	ExpectedReturn     float64         `json:"expectedReturn"`
	ExpectedVolatility float64         `json:"expectedVolatility"`
	MaxDrawdown        float64         `json:"maxDrawdown"`
	Probability        int             `json:"probability"`
	ForecastData       []ForecastPoint `json:"forecastData"`
}

type Scenarios struct {
	Optimistic  PredictionScenario `json:"optimistic"`
	Realistic   PredictionScenario `json:"realistic"`
	Pessimistic PredictionScenario `json:"pessimistic"`
}

type TrendAnalysis struct {
	ShortTerm  Trend `json:"shortTerm"`
	MediumTerm Trend `json:"mediumTerm"`
	LongTerm   Trend `json:"longTerm"`
}

type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type PredictionResult struct {
	ID              string        `json:"id"`
	StrategyID      string        `json:"strategyId"`
	PredictionDate  string        `json:"predictionDate"`
	ForecastPeriod  Period        `json:"forecastPeriod"`
	Confidence      int           `json:"confidence"`
	KeyFactors      []string      `json:"keyFactors"`
	Recommendations []string      `json:"recommendations"`
	TrendAnalysis   TrendAnalysis `json:"trendAnalysis"`
	Scenarios       Scenarios     `json:"scenarios"`
}
