package handler

import (
	"errors"
	"strings"

	"go-inventory-sheets/internal/service"
	"go-inventory-sheets/internal/syncer"

	"github.com/gofiber/fiber/v2"
)

// errorStatus maps service errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated), errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrPermissionDenied), errors.Is(err, service.ErrCannotDeleteSelf),
		errors.Is(err, service.ErrCannotDeleteMaster):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrItemNotFound), errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrLogNotFound), errors.Is(err, service.ErrUnknownSyncDomain):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, syncer.ErrSyncInProgress):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidQuantity), errors.Is(err, service.ErrItemNameRequired),
		errors.Is(err, syncer.ErrSourceNotConfigured):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// errorMessage drops the sentinel prefix from wrapped errors so clients see
// the page message, e.g. "You do not have permission to add items".
func errorMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{service.ErrPermissionDenied, service.ErrValidation} {
		if errors.Is(err, sentinel) {
			msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
		}
	}
	return msg
}

func respondError(c *fiber.Ctx, err error) error {
	var importErr *service.ImportError
	if errors.As(err, &importErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Import failed with errors",
			"errors": importErr.Errors,
		})
	}

	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		return c.Status(status).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": errorMessage(err)})
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
}
