package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"macromatch-go-api/internal/models"
	"macromatch-go-api/internal/services"
)

type RecommendHandler struct {
	advisor *services.Advisor
}

func NewRecommendHandler(advisor *services.Advisor) *RecommendHandler {
	return &RecommendHandler{advisor: advisor}
}

// Recommendation handles GET /v1/etfs/:symbol/recommendation
func (h *RecommendHandler) Recommendation(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	rec, err := h.advisor.Recommend(ctx, c.Params("symbol"))
	if err != nil {
		return err
	}
	return c.JSON(rec)
}

// Analysis handles GET /v1/etfs/:symbol/analysis
func (h *RecommendHandler) Analysis(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	res, err := h.advisor.Analyze(ctx, c.Params("symbol"))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Score handles POST /v1/recommendations/score
func (h *RecommendHandler) Score(c *fiber.Ctx) error {
	var req models.ScoreRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return c.JSON(h.advisor.ScoreIndicators(req))
}
