package handler

import (
	"time"

	"go-inventory-sheets/internal/middleware"
	"go-inventory-sheets/internal/service"
	"go-inventory-sheets/internal/store"

	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	audit service.AuditLogger
}

func NewAuditHandler(audit service.AuditLogger) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// parseDay accepts a calendar date (interpreted in server local time) or an RFC3339 timestamp.
func parseDay(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// GetLogs returns audit entries newest first
// GET /api/v1/audit-logs?start=&end=&q=
func (h *AuditHandler) GetLogs(c *fiber.Ctx) error {
	start, err := parseDay(c.Query("start"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid start date"})
	}
	end, err := parseDay(c.Query("end"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid end date"})
	}

	return c.JSON(h.audit.List(store.AuditFilter{Start: start, End: end, Query: c.Query("q")}))
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

// PUT /api/v1/audit-logs/:id/notes
func (h *AuditHandler) UpdateNotes(c *fiber.Ctx) error {
	var req updateNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	entry, err := h.audit.UpdateNotes(middleware.CurrentUser(c), c.Params("id"), req.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}
