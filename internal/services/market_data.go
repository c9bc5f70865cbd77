package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"macromatch-go-api/internal/config"
	"macromatch-go-api/internal/metrics"
	"macromatch-go-api/internal/models"
	"macromatch-go-api/pkg/alphavantage"
	"macromatch-go-api/pkg/logger"
	"macromatch-go-api/pkg/yahoo"
)

const quoteFetchTimeout = 5 * time.Second

type quoteSource interface {
	GetQuote(ctx context.Context, symbol string) (*models.TickerData, error)
}

type historySource interface {
	GetHistoricalPrices(ctx context.Context, symbol string, days int) ([]float64, error)
}

// provider is one quote source guarded by its own breaker.
type provider struct {
	name    string
	source  quoteSource
	breaker *gobreaker.CircuitBreaker
}

func newProvider(name string, source quoteSource) provider {
	return provider{
		name:   name,
		source: source,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Interval:    60 * time.Second,
			Timeout:     60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			IsSuccessful: upstreamHealthy,
		}),
	}
}

// upstreamHealthy reports whether err leaves the provider looking healthy.
// Unknown symbols and callers giving up say nothing about the upstream.
func upstreamHealthy(err error) bool {
	switch {
	case err == nil,
		errors.Is(err, yahoo.ErrNoData),
		errors.Is(err, alphavantage.ErrNoData),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return true
	}
	return false
}

func (p provider) quote(ctx context.Context, symbol string) (*models.TickerData, error) {
	start := time.Now()
	res, err := p.breaker.Execute(func() (interface{}, error) {
		return p.source.GetQuote(ctx, symbol)
	})
	metrics.ObserveUpstream(p.name, start, err)
	if err != nil {
		return nil, err
	}
	return res.(*models.TickerData), nil
}

// MarketDataService handles concurrent market data fetching
type MarketDataService struct {
	log        *logger.Logger
	cache      *CacheService
	providers  []provider
	history    historySource
	workerPool chan struct{} // Semaphore for bounded concurrency
}

// NewMarketDataService wires Yahoo as the primary source and Alpha Vantage
// as the fallback when a key is configured.
func NewMarketDataService(cfg *config.Config, cache *CacheService, av *alphavantage.Client, log *logger.Logger) *MarketDataService {
	yc := yahoo.NewClient(yahoo.WithBaseURL(cfg.Yahoo.BaseURL), yahoo.WithTimeout(cfg.Yahoo.Timeout))

	providers := []provider{newProvider("yahoo", yc)}
	if av != nil && av.HasKey() {
		providers = append(providers, newProvider("alphavantage", av))
	} else {
		log.Warn("ALPHA_VANTAGE_KEY not set, using Yahoo Finance only")
	}

	return newMarketDataService(cache, log, cfg.MaxConcurrentFetches, yc, providers...)
}

func newMarketDataService(cache *CacheService, log *logger.Logger, concurrency int, history historySource, providers ...provider) *MarketDataService {
	return &MarketDataService{
		log:        log,
		cache:      cache,
		providers:  providers,
		history:    history,
		workerPool: make(chan struct{}, max(concurrency, 1)),
	}
}

// FetchBatch fetches data for multiple tickers concurrently using worker pool pattern.
// It only fails when no ticker could be fetched.
func (s *MarketDataService) FetchBatch(ctx context.Context, tickers []string) (map[string]*models.TickerData, error) {
	results := make(map[string]*models.TickerData, len(tickers))
	var wg sync.WaitGroup

	type fetched struct {
		symbol string
		data   *models.TickerData
	}
	resultCh := make(chan fetched, len(tickers))
	errorCh := make(chan error, len(tickers))

	for _, ticker := range tickers {
		wg.Add(1)

		go func(symbol string) {
			defer wg.Done()

			select {
			case s.workerPool <- struct{}{}:
			case <-ctx.Done():
				errorCh <- ctx.Err()
				return
			}
			defer func() { <-s.workerPool }()

			fetchCtx, cancel := context.WithTimeout(ctx, quoteFetchTimeout)
			defer cancel()

			data, err := s.FetchQuote(fetchCtx, symbol)
			if err != nil {
				errorCh <- fmt.Errorf("failed to fetch %s: %w", symbol, err)
				return
			}
			resultCh <- fetched{symbol, data}
		}(ticker)
	}

	go func() {
		wg.Wait()
		close(resultCh)
		close(errorCh)
	}()

	for r := range resultCh {
		results[r.symbol] = r.data
	}

	var errs []error
	for err := range errorCh {
		errs = append(errs, err)
	}

	if len(errs) > 0 && len(results) == 0 {
		return nil, fmt.Errorf("all fetches failed: %w", errors.Join(errs...))
	}
	return results, nil
}

// FetchQuote tries the cache and then each provider in order. Providers are
// tried one after another so the rate limited fallback is only spent when
// the primary fails.
func (s *MarketDataService) FetchQuote(ctx context.Context, symbol string) (*models.TickerData, error) {
	if cached, found := s.cache.GetTickerData(ctx, symbol); found {
		return cached, nil
	}

	var errs []error
	for _, p := range s.providers {
		data, err := p.quote(ctx, symbol)
		if err != nil {
			s.log.Warn("quote fetch failed",
				logger.String("provider", p.name), logger.String("symbol", symbol), logger.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", p.name, err))
			continue
		}
		if err := s.cache.SetTickerData(ctx, symbol, data); err != nil {
			s.log.Warn("quote cache write failed", logger.String("symbol", symbol), logger.Error(err))
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w for %s: %w", ErrAllSourcesFailed, symbol, errors.Join(errs...))
}

// GetHistoricalData fetches daily closes for the last days
func (s *MarketDataService) GetHistoricalData(ctx context.Context, symbol string, days int) ([]float64, error) {
	if s.history == nil {
		return nil, fmt.Errorf("%w: no history source", ErrAllSourcesFailed)
	}
	start := time.Now()
	prices, err := s.history.GetHistoricalPrices(ctx, symbol, days)
	metrics.ObserveUpstream("yahoo", start, err)
	return prices, err
}
