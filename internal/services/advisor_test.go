package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macromatch-go-api/internal/models"
	"macromatch-go-api/pkg/logger"
)

type staticIndicators struct {
	inds []models.Indicator
	err  error
}

func (s staticIndicators) Indicators(context.Context) (*models.IndicatorSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.IndicatorSnapshot{Indicators: s.inds, Source: models.SourceLive}, nil
}

type stubQuotes struct {
	quotes  map[string]*models.TickerData
	history []float64
}

func (s stubQuotes) FetchQuote(_ context.Context, symbol string) (*models.TickerData, error) {
	if q, ok := s.quotes[symbol]; ok {
		return q, nil
	}
	return nil, ErrAllSourcesFailed
}

func (s stubQuotes) FetchBatch(_ context.Context, symbols []string) (map[string]*models.TickerData, error) {
	out := map[string]*models.TickerData{}
	for _, sym := range symbols {
		if q, ok := s.quotes[sym]; ok {
			out[sym] = q
		}
	}
	if len(out) == 0 {
		return nil, ErrAllSourcesFailed
	}
	return out, nil
}

func (s stubQuotes) GetHistoricalData(context.Context, string, int) ([]float64, error) {
	return s.history, nil
}

func rateCutWithInflation() []models.Indicator {
	return []models.Indicator{
		{ID: "fed", Name: "기준금리", Category: models.CategoryInterestRate, ChangeRate: -1.0},
		{ID: "cpi", Name: "소비자물가지수(CPI)", Category: models.CategoryInflation, ChangeRate: 1.0},
	}
}

func newTestAdvisor(quotes QuoteProvider) *Advisor {
	return NewAdvisor(staticIndicators{inds: rateCutWithInflation()}, quotes, nil, logger.Nop())
}

func TestAdvisorETFWithQuote(t *testing.T) {
	a := newTestAdvisor(stubQuotes{quotes: map[string]*models.TickerData{
		"TLT": {Symbol: "TLT", Price: 95.5, ChangePercent: -0.4, Volume: 1000},
	}})

	etf, err := a.ETF(context.Background(), " tlt ")
	require.NoError(t, err)
	assert.Equal(t, "TLT", etf.Symbol)
	require.NotNil(t, etf.Price)
	assert.Equal(t, 95.5, *etf.Price)
	require.NotNil(t, etf.Volume)
	assert.Equal(t, int64(1000), *etf.Volume)
}

func TestAdvisorETFDegradesToMetadata(t *testing.T) {
	a := newTestAdvisor(stubQuotes{})

	etf, err := a.ETF(context.Background(), "GLD")
	require.NoError(t, err)
	assert.Equal(t, "SPDR Gold Shares", etf.Name)
	assert.Nil(t, etf.Price)
}

func TestAdvisorETFUnknownSymbol(t *testing.T) {
	_, err := newTestAdvisor(stubQuotes{}).ETF(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, ErrUnknownSymbol)

	_, err = newTestAdvisor(nil).ETF(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestAdvisorETFUnknownSymbolWithQuote(t *testing.T) {
	a := newTestAdvisor(stubQuotes{quotes: map[string]*models.TickerData{"ARKK": {Symbol: "ARKK", Price: 45}}})

	etf, err := a.ETF(context.Background(), "ARKK")
	require.NoError(t, err)
	assert.Equal(t, "기타", etf.Category)
	assert.Equal(t, 45.0, *etf.Price)
}

func TestAdvisorRecommend(t *testing.T) {
	rec, err := newTestAdvisor(nil).Recommend(context.Background(), "TLT")
	require.NoError(t, err)
	assert.Equal(t, -3.0, rec.Score)
	assert.Equal(t, models.RecommendHold, rec.Recommendation)
	assert.Equal(t, models.RiskMedium, rec.RiskLevel)
}

func TestAdvisorRecommendIndicatorFailure(t *testing.T) {
	a := NewAdvisor(staticIndicators{err: errors.New("boom")}, nil, nil, logger.Nop())
	_, err := a.Recommend(context.Background(), "TLT")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load indicators")
}

func TestAdvisorAnalyze(t *testing.T) {
	got, err := newTestAdvisor(nil).Analyze(context.Background(), "TLT")
	require.NoError(t, err)
	assert.Equal(t, "TLT", got.ETF.Symbol)
	assert.Len(t, got.Analysis.RiskFactors, 1)
	assert.Len(t, got.Analysis.Opportunities, 1)
}

func TestAdvisorScoreIndicators(t *testing.T) {
	change := 1.2
	got := newTestAdvisor(nil).ScoreIndicators(models.ScoreRequest{
		Symbol:     "xle",
		Name:       "에너지 ETF",
		ChangeRate: &change,
		Indicators: []models.Indicator{{ID: "wti", Name: "WTI", Category: models.CategoryEnergy, ChangeRate: 2}},
	})

	assert.Equal(t, "XLE", got.ETF.Symbol)
	assert.Equal(t, "에너지 ETF", got.ETF.Name)
	assert.InDelta(t, 13.5, got.Recommendation.Score, 1e-9)
	assert.Equal(t, models.RecommendBuy, got.Recommendation.Recommendation)
	assert.Contains(t, got.Analysis.TechnicalAnalysis, "상승 추세")
}

func TestAdvisorListETFs(t *testing.T) {
	a := newTestAdvisor(stubQuotes{quotes: map[string]*models.TickerData{
		"SPY": {Symbol: "SPY", Price: 450, ChangePercent: 0.5},
		"QQQ": {Symbol: "QQQ", Price: 380, ChangePercent: 1.5},
	}})

	page, err := a.ListETFs(context.Background(), models.ETFQuery{Category: "all", Risk: "all", Sort: "performance", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 10, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 6)
	assert.Equal(t, "QQQ", page.Items[0].Symbol)
	assert.Equal(t, "SPY", page.Items[1].Symbol)
}

func TestAdvisorListETFsWithoutQuotes(t *testing.T) {
	page, err := newTestAdvisor(stubQuotes{}).ListETFs(context.Background(), models.ETFQuery{Category: "all", Risk: "low", Page: 1})
	require.NoError(t, err)
	for _, etf := range page.Items {
		assert.Equal(t, models.RiskLow, etf.Risk)
		assert.Nil(t, etf.Price)
	}
}

func TestAdvisorPredictValidatesPortfolio(t *testing.T) {
	a := newTestAdvisor(nil)

	_, err := a.Predict(models.PredictionRequest{InitialInvestment: 1000})
	assert.ErrorIs(t, err, ErrNoETFSelected)

	_, err = a.Predict(models.PredictionRequest{
		SelectedETFs:      []string{"SPY", "TLT"},
		Allocation:        map[string]float64{"SPY": 60, "TLT": 30},
		InitialInvestment: 1000,
	})
	assert.ErrorIs(t, err, ErrInvalidAllocation)
}

func TestAdvisorPredictIsReproducibleWithSeed(t *testing.T) {
	a := newTestAdvisor(nil)
	seed := int64(42)
	req := models.PredictionRequest{
		StrategyID:          "balanced",
		SelectedETFs:        []string{"SPY", "TLT", "GLD"},
		Allocation:          map[string]float64{"SPY": 50, "TLT": 30, "GLD": 20},
		InitialInvestment:   10000,
		PortfolioComplexity: 1,
		Seed:                &seed,
	}

	first, err := a.Predict(req)
	require.NoError(t, err)
	second, err := a.Predict(req)
	require.NoError(t, err)

	assert.Equal(t, "balanced-prediction", first.StrategyID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.KeyFactors, second.KeyFactors)
	assert.Equal(t, first.Scenarios, second.Scenarios)
}

func TestAdvisorSimulate(t *testing.T) {
	a := newTestAdvisor(nil)
	settings := models.SimulationSettings{
		StartDate:          "2024-01-01",
		EndDate:            "2023-01-01",
		InitialInvestment:  10000,
		RebalanceFrequency: models.RebalanceQuarterly,
		SelectedETFs:       []string{"SPY"},
		Allocation:         map[string]float64{"SPY": 100},
	}
	_, err := a.Simulate(settings)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	settings.StartDate, settings.EndDate = "2020-01-01", "2024-01-01"
	res, err := a.Simulate(settings)
	require.NoError(t, err)
	assert.Equal(t, 45.6, res.TotalReturn)
	assert.NotEmpty(t, res.PerformanceData)
}

func TestAdvisorHistory(t *testing.T) {
	prices, err := newTestAdvisor(stubQuotes{history: []float64{1, 2}}).History(context.Background(), "spy", 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, prices)

	_, err = newTestAdvisor(nil).History(context.Background(), "SPY", 2)
	assert.ErrorIs(t, err, ErrAllSourcesFailed)
}

func TestAdvisorRefreshCache(t *testing.T) {
	assert.NoError(t, newTestAdvisor(nil).RefreshCache(context.Background()))

	remote := newMemoryRemote()
	cache := newTestCache(t, remote)
	a := NewAdvisor(staticIndicators{}, nil, cache, logger.Nop())
	require.NoError(t, a.RefreshCache(context.Background()))
	assert.NotEmpty(t, remote.flushed)
}
