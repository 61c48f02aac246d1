package handler

import (
	"go-inventory-sheets/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetSummary returns overview statistics
// GET /api/v1/dashboard
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	return c.JSON(h.service.GetSummary())
}
