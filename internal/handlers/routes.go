package handlers

import (
	"github.com/gofiber/fiber/v2"

	"macromatch-go-api/internal/services"
)

// RegisterRoutes mounts the v1 API under router.
func RegisterRoutes(router fiber.Router, advisor *services.Advisor) {
	market := NewMarketHandler(advisor)
	rec := NewRecommendHandler(advisor)
	strat := NewStrategyHandler(advisor)

	v1 := router.Group("/v1")
	v1.Get("/indicators", market.Indicators)
	v1.Get("/etfs", market.ListETFs)
	v1.Get("/etfs/:symbol", market.GetETF)
	v1.Get("/etfs/:symbol/recommendation", rec.Recommendation)
	v1.Get("/etfs/:symbol/analysis", rec.Analysis)
	v1.Get("/etfs/:symbol/history", market.History)
	v1.Post("/recommendations/score", rec.Score)
	v1.Post("/predictions", strat.Predict)
	v1.Post("/strategy/simulate", strat.Simulate)
	v1.Post("/admin/refresh", market.RefreshCache)
}
