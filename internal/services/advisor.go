package services

import (
	"context"
	"fmt"
	"strings"

	"macromatch-go-api/internal/catalog"
	"macromatch-go-api/internal/forecast"
	"macromatch-go-api/internal/metrics"
	"macromatch-go-api/internal/models"
	"macromatch-go-api/internal/recommend"
	"macromatch-go-api/internal/strategy"
	"macromatch-go-api/pkg/logger"
)

// IndicatorProvider supplies the macro readings the engine scores against.
type IndicatorProvider interface {
	Indicators(ctx context.Context) (*models.IndicatorSnapshot, error)
}

// QuoteProvider supplies market data for catalog symbols.
type QuoteProvider interface {
	FetchQuote(ctx context.Context, symbol string) (*models.TickerData, error)
	FetchBatch(ctx context.Context, symbols []string) (map[string]*models.TickerData, error)
	GetHistoricalData(ctx context.Context, symbol string, days int) ([]float64, error)
}

type cacheFlusher interface {
	Flush(ctx context.Context) error
}

// Advisor coordinates indicators, quotes and the engines behind every
// endpoint.
type Advisor struct {
	indicators IndicatorProvider
	quotes     QuoteProvider
	cache      cacheFlusher
	generator  *forecast.Generator
	log        *logger.Logger
}

// NewAdvisor builds an advisor. quotes and cache may be nil: ETFs then
// carry metadata only and RefreshCache is a no-op.
func NewAdvisor(indicators IndicatorProvider, quotes QuoteProvider, cache *CacheService, log *logger.Logger) *Advisor {
	a := &Advisor{
		indicators: indicators,
		quotes:     quotes,
		generator:  forecast.NewGenerator(nil),
		log:        log,
	}
	if cache != nil {
		a.cache = cache
	}
	return a
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func (a *Advisor) Indicators(ctx context.Context) (*models.IndicatorSnapshot, error) {
	return a.indicators.Indicators(ctx)
}

// ETF returns one fund with its latest quote. Catalog funds degrade to
// metadata when no provider answers; other symbols must resolve a quote.
func (a *Advisor) ETF(ctx context.Context, symbol string) (models.ETF, error) {
	symbol = normalizeSymbol(symbol)
	_, known := catalog.Lookup(symbol)

	if a.quotes == nil {
		if !known {
			return models.ETF{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
		}
		return catalog.CompleteETF(symbol, nil), nil
	}

	quote, err := a.quotes.FetchQuote(ctx, symbol)
	if err != nil {
		if !known {
			return models.ETF{}, fmt.Errorf("%w %s: %w", ErrUnknownSymbol, symbol, err)
		}
		a.log.Warn("serving catalog metadata without quote", logger.String("symbol", symbol), logger.Error(err))
		quote = nil
	}
	return catalog.CompleteETF(symbol, quote), nil
}

// ListETFs returns one browse page over the whole catalog.
func (a *Advisor) ListETFs(ctx context.Context, q models.ETFQuery) (models.ETFPage, error) {
	symbols := catalog.Symbols()

	var quotes map[string]*models.TickerData
	if a.quotes != nil {
		batch, err := a.quotes.FetchBatch(ctx, symbols)
		if err != nil {
			a.log.Warn("catalog quotes unavailable", logger.Int("symbols", len(symbols)), logger.Error(err))
		}
		quotes = batch
	}

	etfs := make([]models.ETF, len(symbols))
	for i, s := range symbols {
		etfs[i] = catalog.CompleteETF(s, quotes[s])
	}
	return catalog.Page(etfs, q), nil
}

func (a *Advisor) snapshot(ctx context.Context) ([]models.Indicator, error) {
	snap, err := a.indicators.Indicators(ctx)
	if err != nil {
		return nil, fmt.Errorf("load indicators: %w", err)
	}
	return snap.Indicators, nil
}

// Recommend scores symbol against the current indicators.
func (a *Advisor) Recommend(ctx context.Context, symbol string) (models.RecommendationResult, error) {
	etf, err := a.ETF(ctx, symbol)
	if err != nil {
		return models.RecommendationResult{}, err
	}
	inds, err := a.snapshot(ctx)
	if err != nil {
		return models.RecommendationResult{}, err
	}

	rec := recommend.Recommend(etf, inds)
	metrics.Recommendations.WithLabelValues(string(rec.Recommendation)).Inc()
	return rec, nil
}

// Analyze returns the recommendation together with the detail texts.
func (a *Advisor) Analyze(ctx context.Context, symbol string) (models.ETFAnalysis, error) {
	etf, err := a.ETF(ctx, symbol)
	if err != nil {
		return models.ETFAnalysis{}, err
	}
	inds, err := a.snapshot(ctx)
	if err != nil {
		return models.ETFAnalysis{}, err
	}
	return a.analysis(etf, inds), nil
}

// ScoreIndicators runs the engine over caller-supplied readings without
// touching any upstream.
func (a *Advisor) ScoreIndicators(req models.ScoreRequest) models.ETFAnalysis {
	symbol := normalizeSymbol(req.Symbol)
	etf := catalog.CompleteETF(symbol, nil)
	if req.Name != "" {
		etf.Name = req.Name
	}
	etf.ChangeRate = req.ChangeRate
	return a.analysis(etf, req.Indicators)
}

func (a *Advisor) analysis(etf models.ETF, inds []models.Indicator) models.ETFAnalysis {
	rec, detail := recommend.Analyze(etf, inds)
	metrics.Recommendations.WithLabelValues(string(rec.Recommendation)).Inc()
	return models.ETFAnalysis{ETF: etf, Recommendation: rec, Analysis: detail}
}

// Predict produces the scenario report for a portfolio. The allocation
// must total 100%.
func (a *Advisor) Predict(req models.PredictionRequest) (models.PredictionResult, error) {
	if len(req.SelectedETFs) == 0 {
		return models.PredictionResult{}, ErrNoETFSelected
	}
	if !strategy.IsAllocationValid(req.Allocation) {
		return models.PredictionResult{}, fmt.Errorf("%w: got %s", ErrInvalidAllocation, strategy.TotalAllocation(req.Allocation).String())
	}

	result := a.generator.Predict(forecast.PredictionInput{
		StrategyID:        req.StrategyID,
		ETFCount:          len(req.SelectedETFs),
		Complexity:        req.PortfolioComplexity,
		InitialInvestment: req.InitialInvestment,
	}, forecast.RandFor(req.Seed))

	metrics.Predictions.Inc()
	a.log.Debug("prediction generated",
		logger.String("id", result.ID), logger.Int("etfs", len(req.SelectedETFs)), logger.Int("confidence", result.Confidence))
	return result, nil
}

func (a *Advisor) Simulate(settings models.SimulationSettings) (models.BacktestResult, error) {
	return strategy.Simulate(forecast.RandFor(settings.Seed), settings)
}

// History returns up to days daily closes for symbol, oldest first.
func (a *Advisor) History(ctx context.Context, symbol string, days int) ([]float64, error) {
	if a.quotes == nil {
		return nil, fmt.Errorf("%w: market data disabled", ErrAllSourcesFailed)
	}
	return a.quotes.GetHistoricalData(ctx, normalizeSymbol(symbol), days)
}

// RefreshCache empties every cache layer.
func (a *Advisor) RefreshCache(ctx context.Context) error {
	if a.cache == nil {
		return nil
	}
	if err := a.cache.Flush(ctx); err != nil {
		return fmt.Errorf("flush caches: %w", err)
	}
	a.log.Info("caches flushed")
	return nil
}
