package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"macromatch-go-api/internal/catalog"
	"macromatch-go-api/internal/metrics"
	"macromatch-go-api/internal/models"
	"macromatch-go-api/pkg/alphavantage"
	"macromatch-go-api/pkg/logger"
)

const (
	macroFetchTimeout = 15 * time.Second
	// the exchange rate endpoint has no history; yesterday is approximated
	usdkrwPreviousFactor = 0.995
)

// macroSource is the subset of the Alpha Vantage client the macro service
// reads from.
type macroSource interface {
	HasKey() bool
	GetDailyCloses(ctx context.Context, symbol string) ([]alphavantage.Observation, error)
	GetExchangeRate(ctx context.Context, from, to string) (float64, error)
	GetEconomicSeries(ctx context.Context, function string, extra map[string]string) ([]alphavantage.Observation, error)
}

type macroSeries struct {
	id          string
	name        string
	category    models.Category
	unit        string
	frequency   models.Frequency
	description string
	fetch       func(ctx context.Context, src macroSource) (current, previous float64, err error)
}

func latestPair(obs []alphavantage.Observation, err error) (float64, float64, error) {
	if err != nil {
		return 0, 0, err
	}
	if len(obs) < 2 {
		return 0, 0, fmt.Errorf("%w: need two observations, got %d", alphavantage.ErrNoData, len(obs))
	}
	return obs[0].Value, obs[1].Value, nil
}

func economicSeries(function string, extra map[string]string) func(context.Context, macroSource) (float64, float64, error) {
	return func(ctx context.Context, src macroSource) (float64, float64, error) {
		return latestPair(src.GetEconomicSeries(ctx, function, extra))
	}
}

var liveSeries = []macroSeries{
	{
		id:          "sp500",
		name:        "S&P 500 지수",
		category:    models.CategoryMarket,
		frequency:   models.FrequencyDaily,
		description: "미국 주식시장의 대표적인 지수로, 500개 대형 기업의 주가를 반영합니다.",
		fetch: func(ctx context.Context, src macroSource) (float64, float64, error) {
			return latestPair(src.GetDailyCloses(ctx, "SPY"))
		},
	},
	{
		id:          "usdkrw",
		name:        "원달러 환율",
		category:    models.CategoryCurrency,
		unit:        "원",
		frequency:   models.FrequencyDaily,
		description: "미국 달러 대비 한국 원화의 환율을 나타냅니다.",
		fetch: func(ctx context.Context, src macroSource) (float64, float64, error) {
			rate, err := src.GetExchangeRate(ctx, "USD", "KRW")
			if err != nil {
				return 0, 0, err
			}
			return rate, rate * usdkrwPreviousFactor, nil
		},
	},
	{
		id:          "wti",
		name:        "WTI 원유가격",
		category:    models.CategoryEnergy,
		unit:        "달러/배럴",
		frequency:   models.FrequencyDaily,
		description: "서부 텍사스 중질유 가격으로, 글로벌 원유 가격의 기준이 됩니다.",
		fetch:       economicSeries(alphavantage.FunctionWTI, map[string]string{"interval": "daily"}),
	},
	{
		id:          "treasury-yield",
		name:        "10년 국채 수익률",
		category:    models.CategoryInterestRate,
		unit:        "%",
		frequency:   models.FrequencyDaily,
		description: "미국 10년 국채 수익률로, 장기 금리 동향을 나타냅니다.",
		fetch: economicSeries(alphavantage.FunctionTreasuryYield, map[string]string{
			"interval": "daily",
			"maturity": "10year",
		}),
	},
	{
		id:          "real-gdp",
		name:        "실질 GDP",
		category:    models.CategoryGrowth,
		unit:        "십억 달러",
		frequency:   models.FrequencyQuarterly,
		description: "미국 실질 국내총생산으로, 경제 성장 추세를 나타냅니다.",
		fetch:       economicSeries(alphavantage.FunctionRealGDP, map[string]string{"interval": "quarterly"}),
	},
	{
		id:          "unemployment-rate",
		name:        "실업률",
		category:    models.CategoryEmployment,
		unit:        "%",
		frequency:   models.FrequencyMonthly,
		description: "노동력 중 실업자 비율을 나타냅니다.",
		fetch:       economicSeries(alphavantage.FunctionUnemployment, nil),
	},
}

// MacroDataService assembles the indicator snapshot from live series, with
// the static set as fallback.
type MacroDataService struct {
	log    *logger.Logger
	cache  *CacheService
	source macroSource
	now    func() time.Time
}

func NewMacroDataService(cache *CacheService, source macroSource, log *logger.Logger) *MacroDataService {
	return &MacroDataService{log: log, cache: cache, source: source, now: time.Now}
}

// Indicators returns the current snapshot. It never fails: without a key
// or without any successful series it serves the fallback set.
func (s *MacroDataService) Indicators(ctx context.Context) (*models.IndicatorSnapshot, error) {
	if s.cache != nil {
		if snap, ok := s.cache.GetIndicators(ctx); ok {
			cached := *snap
			cached.Cached = true
			return &cached, nil
		}
	}

	now := s.now().UTC()
	if s.source == nil || !s.source.HasKey() {
		return s.fallback(now), nil
	}

	indicators := s.fetchLive(ctx, now)
	if len(indicators) == 0 {
		s.log.Warn("no live macro series available, serving fallback indicators")
		return s.fallback(now), nil
	}

	snap := &models.IndicatorSnapshot{
		Indicators:  indicators,
		Source:      models.SourceLive,
		LastUpdated: now,
	}
	if s.cache != nil {
		if err := s.cache.SetIndicators(ctx, snap); err != nil {
			s.log.Warn("indicator cache write failed", logger.Error(err))
		}
	}
	return snap, nil
}

func (s *MacroDataService) fallback(now time.Time) *models.IndicatorSnapshot {
	return &models.IndicatorSnapshot{
		Indicators:  catalog.FallbackIndicators(now),
		Source:      models.SourceFallback,
		LastUpdated: now,
	}
}

// fetchLive queries every series concurrently and keeps the table order.
func (s *MacroDataService) fetchLive(ctx context.Context, now time.Time) []models.Indicator {
	slots := make([]*models.Indicator, len(liveSeries))
	var wg sync.WaitGroup

	for i, series := range liveSeries {
		wg.Add(1)
		go func() {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, macroFetchTimeout)
			defer cancel()

			start := time.Now()
			current, previous, err := series.fetch(fetchCtx, s.source)
			if err == nil && previous == 0 {
				err = errors.New("previous value is zero")
			}
			metrics.ObserveUpstream("alphavantage", start, err)
			if err != nil {
				s.log.Warn("macro series unavailable",
					logger.String("provider", "alphavantage"), logger.String("series", series.id), logger.Error(err))
				return
			}

			slots[i] = &models.Indicator{
				ID:            series.id,
				Name:          series.name,
				Category:      series.category,
				Value:         current,
				PreviousValue: previous,
				ChangeRate:    (current - previous) / previous * 100,
				Unit:          series.unit,
				Frequency:     series.frequency,
				Description:   series.description,
				UpdatedAt:     now,
			}
		}()
	}
	wg.Wait()

	out := make([]models.Indicator, 0, len(slots))
	for _, ind := range slots {
		if ind != nil {
			out = append(out, *ind)
		}
	}
	return out
}
