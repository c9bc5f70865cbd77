package models

// PredictionRequest represents the incoming prediction request
type PredictionRequest struct {
	StrategyID          string             `json:"strategyId" default:"custom-strategy" validate:"max=64"`
	SelectedETFs        []string           `json:"selectedEtfs" validate:"required,min=1,max=50,dive,required"`
	Allocation          map[string]float64 `json:"allocation" validate:"required"`
	InitialInvestment   float64            `json:"initialInvestment" validate:"gt=0,lte=1000000000000"`
	PortfolioComplexity int                `json:"portfolioComplexity" default:"1" validate:"min=0,max=50"`
	Seed                *int64             `json:"seed,omitempty"`
}

// ScoreRequest scores caller-supplied indicator readings for one symbol.
type ScoreRequest struct {
	Symbol     string      `json:"symbol" validate:"required,max=12"`
	Name       string      `json:"name"`
	ChangeRate *float64    `json:"changeRate,omitempty"`
	Indicators []Indicator `json:"indicators" validate:"max=200,dive"`
}
