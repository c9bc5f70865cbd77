// Package app wires configuration into the running service graph.
package app

import (
	"context"

	"macromatch-go-api/internal/config"
	"macromatch-go-api/internal/services"
	"macromatch-go-api/pkg/alphavantage"
	"macromatch-go-api/pkg/logger"
)

// Components is the wired service graph shared by the server and the CLI.
type Components struct {
	Cache   *services.CacheService
	Market  *services.MarketDataService
	Macro   *services.MacroDataService
	Advisor *services.Advisor
}

// Build connects every upstream described by cfg.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) *Components {
	cache := services.NewCacheService(ctx, cfg, log)

	av := alphavantage.NewClient(cfg.AlphaVantage.APIKey,
		alphavantage.WithBaseURL(cfg.AlphaVantage.BaseURL),
		alphavantage.WithTimeout(cfg.AlphaVantage.Timeout),
		alphavantage.WithRequestsPerMinute(cfg.AlphaVantage.RequestsPerMinute),
	)

	market := services.NewMarketDataService(cfg, cache, av, log)
	macro := services.NewMacroDataService(cache, av, log)

	return &Components{
		Cache:   cache,
		Market:  market,
		Macro:   macro,
		Advisor: services.NewAdvisor(macro, market, cache, log),
	}
}

// Offline builds an advisor that never leaves the process: fallback
// indicators and catalog metadata only.
func Offline(log *logger.Logger) *Components {
	macro := services.NewMacroDataService(nil, nil, log)
	return &Components{
		Macro:   macro,
		Advisor: services.NewAdvisor(macro, nil, nil, log),
	}
}

func (c *Components) Close() error {
	if c.Cache == nil {
		return nil
	}
	return c.Cache.Close()
}
