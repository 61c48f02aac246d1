package handler

import (
	"go-inventory-sheets/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SetupHandler struct {
	service service.SetupService
}

func NewSetupHandler(s service.SetupService) *SetupHandler {
	return &SetupHandler{service: s}
}

// GET /api/v1/setup/status
func (h *SetupHandler) GetStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// Verify probes both sheets; failures are reported in the body, not the status code.
// POST /api/v1/setup/verify
func (h *SetupHandler) Verify(c *fiber.Ctx) error {
	return c.JSON(h.service.Verify(c.UserContext()))
}
