package handlers

import (
	"github.com/gofiber/fiber/v2"

	"macromatch-go-api/internal/models"
	"macromatch-go-api/internal/services"
)

type StrategyHandler struct {
	advisor *services.Advisor
}

func NewStrategyHandler(advisor *services.Advisor) *StrategyHandler {
	return &StrategyHandler{advisor: advisor}
}

// Predict handles POST /v1/predictions
func (h *StrategyHandler) Predict(c *fiber.Ctx) error {
	var req models.PredictionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	result, err := h.advisor.Predict(req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Simulate handles POST /v1/strategy/simulate
func (h *StrategyHandler) Simulate(c *fiber.Ctx) error {
	var settings models.SimulationSettings
	if err := bindBody(c, &settings); err != nil {
		return err
	}

	result, err := h.advisor.Simulate(settings)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
