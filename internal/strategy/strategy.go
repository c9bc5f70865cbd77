// Package strategy validates portfolio setups and produces the mock
// back-test shown next to the forecast.
package strategy

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"macromatch-go-api/internal/forecast"
	"macromatch-go-api/internal/models"
)

const (
	dateLayout      = "2006-01-02"
	sampleEveryDays = 30
	mockVolatility  = 0.15
	tradingDays     = 252
	strategyID      = "custom-strategy"
	maxPeriodYears  = 50
)

var (
	ErrNoETFSelected     = errors.New("at least one ETF must be selected")
	ErrInvalidAllocation = errors.New("allocation must total 100%")
	ErrInvalidPeriod     = errors.New("invalid simulation period")

	hundred   = decimal.NewFromInt(100)
	tolerance = decimal.RequireFromString("0.1")
)

// TotalAllocation sums the weights without float drift.
func TotalAllocation(allocation map[string]float64) decimal.Decimal {
	total := decimal.Zero
	for _, w := range allocation {
		total = total.Add(decimal.NewFromFloat(w))
	}
	return total
}

// IsAllocationValid reports whether the weights total 100 within 0.1.
func IsAllocationValid(allocation map[string]float64) bool {
	return TotalAllocation(allocation).Sub(hundred).Abs().LessThanOrEqual(tolerance)
}

// Label is the display name of a rebalance frequency.
func Label(f models.RebalanceFrequency) string {
	switch f {
	case models.RebalanceMonthly:
		return "월간"
	case models.RebalanceQuarterly:
		return "분기별"
	case models.RebalanceYearly:
		return "연간"
	}
	return string(f)
}

func DefaultSettings() models.SimulationSettings {
	return models.SimulationSettings{
		StartDate:          "2020-01-01",
		EndDate:            "2024-01-01",
		InitialInvestment:  10000,
		RebalanceFrequency: models.RebalanceQuarterly,
		SelectedETFs:       []string{},
		Allocation:         map[string]float64{},
	}
}

// Validate checks the parts of a setup the simulator depends on and
// returns the parsed period.
func Validate(s models.SimulationSettings) (time.Time, time.Time, error) {
	if len(s.SelectedETFs) == 0 {
		return time.Time{}, time.Time{}, ErrNoETFSelected
	}
	if !IsAllocationValid(s.Allocation) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: got %s", ErrInvalidAllocation, TotalAllocation(s.Allocation).String())
	}
	start, err := time.Parse(dateLayout, s.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start date: %v", ErrInvalidPeriod, err)
	}
	end, err := time.Parse(dateLayout, s.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date: %v", ErrInvalidPeriod, err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date must be after start date", ErrInvalidPeriod)
	}
	if end.After(start.AddDate(maxPeriodYears, 0, 0)) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: period longer than %d years", ErrInvalidPeriod, maxPeriodYears)
	}
	return start, end, nil
}

// Simulate produces a mock back-test. The headline figures are fixed and
// only the value path is random.
func Simulate(rng forecast.Rand, s models.SimulationSettings) (models.BacktestResult, error) {
	start, end, err := Validate(s)
	if err != nil {
		return models.BacktestResult{}, err
	}

	return models.BacktestResult{
		StrategyID:       strategyID,
		Period:           models.Period{Start: s.StartDate, End: s.EndDate},
		TotalReturn:      45.6,
		AnnualizedReturn: 12.3,
		Volatility:       18.7,
		MaxDrawdown:      -15.2,
		SharpeRatio:      0.85,
		PerformanceData:  performancePath(rng, start, end, s.InitialInvestment),
	}, nil
}

func performancePath(rng forecast.Rand, start, end time.Time, initial float64) []models.PerformancePoint {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	points := make([]models.PerformancePoint, 0, days/sampleEveryDays+1)

	value := initial
	for i := 0; i <= days; i += sampleEveryDays {
		ret := (rng.Float64() - 0.5) * mockVolatility / math.Sqrt(tradingDays)
		value *= 1 + ret
		points = append(points, models.PerformancePoint{
			Date:  start.AddDate(0, 0, i).Format(dateLayout),
			Value: math.Floor(value + 0.5),
		})
	}
	return points
}
