// Package forecast simulates one-year portfolio value paths under three
// market scenarios and assembles the prediction report around them.
package forecast

import (
	"math"
	"time"

	"macromatch-go-api/internal/models"
)

const (
	horizonDays    = 365
	stepDays       = 7
	baseVolatility = 0.12
	bandWidening   = 0.15
	dateLayout     = "2006-01-02"

	expectedVolatility = 15.2
)

type scenarioParams struct {
	baseReturn  float64
	volMultiple float64
	maxDrawdown float64
	probability int
}

var scenarioTable = map[models.ScenarioType]scenarioParams{
	models.ScenarioOptimistic:  {baseReturn: 0.25, volMultiple: 0.8, maxDrawdown: -8.2, probability: 25},
	models.ScenarioRealistic:   {baseReturn: 0.12, volMultiple: 1.0, maxDrawdown: -15.7, probability: 60},
	models.ScenarioPessimistic: {baseReturn: -0.05, volMultiple: 1.3, maxDrawdown: -28.5, probability: 15},
}

// BaseReturn is the annual return assumed for a scenario.
func BaseReturn(t models.ScenarioType) float64 {
	return scenarioTable[t].baseReturn
}

// GenerateScenario walks the value forward in weekly samples from start.
// Trend and noise are sized per day but applied once per weekly step; the
// resulting path is deliberately kept on that scale.
func GenerateScenario(rng Rand, t models.ScenarioType, baseReturn, initialInvestment float64, start time.Time) models.PredictionScenario {
	p := scenarioTable[t]
	vol := baseVolatility * p.volMultiple
	trend := baseReturn / horizonDays
	start = start.UTC()

	points := make([]models.ForecastPoint, 0, horizonDays/stepDays+1)
	value := initialInvestment
	for i := 0; i <= horizonDays; i += stepDays {
		noise := (rng.Float64() - 0.5) * vol / math.Sqrt(horizonDays)
		value *= 1 + trend + noise

		// Both bounds share one rounded half-width.
		uncertainty := math.Abs(baseReturn) * bandWidening * (float64(i) / horizonDays)
		center, half := round(value), round(value*uncertainty)
		points = append(points, models.ForecastPoint{
			Date:       start.AddDate(0, 0, i).Format(dateLayout),
			Value:      center,
			UpperBound: center + half,
			LowerBound: center - half,
		})
	}

	return models.PredictionScenario{
		ExpectedReturn:     baseReturn * 100,
		ExpectedVolatility: expectedVolatility,
		MaxDrawdown:        p.maxDrawdown,
		Probability:        p.probability,
		ForecastData:       points,
	}
}

// round matches the half-up rounding the web client uses, so -2.5 -> -2.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}
