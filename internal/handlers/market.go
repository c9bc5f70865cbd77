package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"macromatch-go-api/internal/models"
	"macromatch-go-api/internal/services"
)

const (
	defaultHistoryDays = 30
	maxHistoryDays     = 365
)

type MarketHandler struct {
	advisor *services.Advisor
}

func NewMarketHandler(advisor *services.Advisor) *MarketHandler {
	return &MarketHandler{advisor: advisor}
}

// Indicators handles GET /v1/indicators
func (h *MarketHandler) Indicators(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	snap, err := h.advisor.Indicators(ctx)
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

// ListETFs handles GET /v1/etfs
func (h *MarketHandler) ListETFs(c *fiber.Ctx) error {
	var q models.ETFQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	page, err := h.advisor.ListETFs(ctx, q)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// GetETF handles GET /v1/etfs/:symbol
func (h *MarketHandler) GetETF(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	etf, err := h.advisor.ETF(ctx, c.Params("symbol"))
	if err != nil {
		return err
	}
	return c.JSON(etf)
}

// History handles GET /v1/etfs/:symbol/history
func (h *MarketHandler) History(c *fiber.Ctx) error {
	days := c.QueryInt("days", defaultHistoryDays)
	if days < 1 || days > maxHistoryDays {
		return BadRequestErrorf("days must be between 1 and %d", maxHistoryDays)
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	symbol := c.Params("symbol")
	prices, err := h.advisor.History(ctx, symbol, days)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"symbol": symbol,
		"days":   days,
		"prices": prices,
	})
}

// RefreshCache handles POST /v1/admin/refresh
func (h *MarketHandler) RefreshCache(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 60*time.Second)
	defer cancel()

	if err := h.advisor.RefreshCache(ctx); err != nil {
		return InternalError("Failed to refresh cache").WithError(err)
	}

	return c.JSON(fiber.Map{
		"message": "Cache refreshed successfully",
		"time":    time.Now(),
	})
}
