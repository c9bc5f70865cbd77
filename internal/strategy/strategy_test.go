package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macromatch-go-api/internal/forecast"
	"macromatch-go-api/internal/models"
)

func TestAllocation(t *testing.T) {
	assert.True(t, IsAllocationValid(map[string]float64{"SPY": 60, "TLT": 40}))
	assert.True(t, IsAllocationValid(map[string]float64{"SPY": 33.3, "TLT": 33.3, "GLD": 33.3}))
	assert.True(t, IsAllocationValid(map[string]float64{"SPY": 100.1}))
	assert.False(t, IsAllocationValid(map[string]float64{"SPY": 100.2}))
	assert.False(t, IsAllocationValid(map[string]float64{"SPY": 50}))
	assert.False(t, IsAllocationValid(nil))

	assert.Equal(t, "100", TotalAllocation(map[string]float64{"A": 0.1, "B": 0.2, "C": 99.7}).String())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "월간", Label(models.RebalanceMonthly))
	assert.Equal(t, "분기별", Label(models.RebalanceQuarterly))
	assert.Equal(t, "연간", Label(models.RebalanceYearly))
	assert.Equal(t, "weekly", Label("weekly"))
}

func validSettings() models.SimulationSettings {
	s := DefaultSettings()
	s.SelectedETFs = []string{"SPY", "TLT"}
	s.Allocation = map[string]float64{"SPY": 70, "TLT": 30}
	return s
}

func TestSimulate(t *testing.T) {
	res, err := Simulate(forecast.NewRand(1), validSettings())
	require.NoError(t, err)

	assert.Equal(t, "custom-strategy", res.StrategyID)
	assert.Equal(t, models.Period{Start: "2020-01-01", End: "2024-01-01"}, res.Period)
	assert.Equal(t, 45.6, res.TotalReturn)
	assert.Equal(t, 0.85, res.SharpeRatio)

	// 1461 days sampled every 30
	require.Len(t, res.PerformanceData, 49)
	assert.Equal(t, "2020-01-01", res.PerformanceData[0].Date)
	assert.Equal(t, "2020-01-31", res.PerformanceData[1].Date)
	for _, p := range res.PerformanceData {
		assert.InDelta(t, 10000, p.Value, 2000)
	}
}

func TestSimulateRejects(t *testing.T) {
	rng := forecast.NewRand(1)

	none := validSettings()
	none.SelectedETFs = nil
	_, err := Simulate(rng, none)
	assert.ErrorIs(t, err, ErrNoETFSelected)

	skewed := validSettings()
	skewed.Allocation["SPY"] = 50
	_, err = Simulate(rng, skewed)
	assert.ErrorIs(t, err, ErrInvalidAllocation)

	reversed := validSettings()
	reversed.StartDate, reversed.EndDate = reversed.EndDate, reversed.StartDate
	_, err = Simulate(rng, reversed)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	garbled := validSettings()
	garbled.EndDate = "2024/01/01"
	_, err = Simulate(rng, garbled)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	endless := validSettings()
	endless.StartDate, endless.EndDate = "1900-01-01", "9999-12-31"
	_, err = Simulate(rng, endless)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	fifty := validSettings()
	fifty.StartDate, fifty.EndDate = "1974-01-01", "2024-01-01"
	_, err = Simulate(rng, fifty)
	assert.NoError(t, err)
}
