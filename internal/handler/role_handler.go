package handler

import (
	"go-inventory-sheets/internal/model"

	"github.com/gofiber/fiber/v2"
)

type RoleHandler struct{}

func NewRoleHandler() *RoleHandler {
	return &RoleHandler{}
}

type roleResponse struct {
	Role        model.Role        `json:"role"`
	Permissions model.Permissions `json:"permissions"`
}

// GetRoles returns all available roles with their default permissions
// GET /api/v1/roles
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	roles := make([]roleResponse, 0, len(model.Roles))
	for _, r := range model.Roles {
		roles = append(roles, roleResponse{Role: r, Permissions: model.PermissionsForRole(r)})
	}
	return c.JSON(roles)
}

// GetRolePermissions is used by the user form to prefill permission flags
// GET /api/v1/roles/:role/permissions
func (h *RoleHandler) GetRolePermissions(c *fiber.Ctx) error {
	role, ok := model.ParseRole(c.Params("role"))
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "Unknown role"})
	}
	return c.JSON(model.PermissionsForRole(role))
}
