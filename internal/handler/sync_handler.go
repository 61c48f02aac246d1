package handler

import (
	"errors"

	"go-inventory-sheets/internal/service"
	"go-inventory-sheets/internal/syncer"

	"github.com/gofiber/fiber/v2"
)

type SyncHandler struct {
	service service.SyncService
}

func NewSyncHandler(s service.SyncService) *SyncHandler {
	return &SyncHandler{service: s}
}

// GET /api/v1/sync
func (h *SyncHandler) GetStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// Trigger runs one sync cycle and waits for it
// POST /api/v1/sync/:domain
func (h *SyncHandler) Trigger(c *fiber.Ctx) error {
	info, err := h.service.Trigger(c.UserContext(), c.Params("domain"))
	switch {
	case err == nil:
		return c.JSON(info)
	case errors.Is(err, syncer.ErrSyncInProgress), errors.Is(err, syncer.ErrSourceNotConfigured),
		errors.Is(err, service.ErrUnknownSyncDomain):
		return respondError(c, err)
	default:
		// the sheet could not be read; the engine state carries the reason
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error(), "status": info})
	}
}
