package handler

import (
	"fmt"
	"time"

	"go-inventory-sheets/internal/middleware"
	"go-inventory-sheets/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransferHandler struct {
	service service.TransferService
	now     func() time.Time
}

func NewTransferHandler(s service.TransferService) *TransferHandler {
	return &TransferHandler{service: s, now: time.Now}
}

// Import takes the raw JSON array as the request body
// POST /api/v1/import
func (h *TransferHandler) Import(c *fiber.Ctx) error {
	count, err := h.service.Import(middleware.CurrentUser(c), c.Body())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"message":  fmt.Sprintf("Successfully imported %d items", count),
		"imported": count,
	})
}

// Export downloads every item as an import-compatible file
// GET /api/v1/export
func (h *TransferHandler) Export(c *fiber.Ctx) error {
	c.Attachment(service.ExportFilename(h.now()))
	return c.JSON(h.service.Export())
}
