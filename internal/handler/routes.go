package handler

import (
	"go-inventory-sheets/internal/middleware"
	"go-inventory-sheets/internal/model"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth      *AuthHandler
	Inventory *InventoryHandler
	Transfer  *TransferHandler
	User      *UserHandler
	Role      *RoleHandler
	Audit     *AuditHandler
	Sync      *SyncHandler
	Setup     *SetupHandler
	Dashboard *DashboardHandler
}

// Register mounts the REST API under /api/v1. requireAuth guards every route
// except login; write permissions are checked again by the services.
func Register(app *fiber.App, h Handlers, requireAuth fiber.Handler) {
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/logout", requireAuth, h.Auth.Logout)
	auth.Get("/me", requireAuth, h.Auth.Me)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)
	canView := middleware.RequirePermission(model.PermView)

	protected.Get("/dashboard", canView, h.Dashboard.GetSummary)

	// Shelves and items
	protected.Get("/shelves", canView, h.Inventory.GetLayout)
	protected.Get("/shelves/:rack/:shelf", canView, h.Inventory.GetShelf)
	protected.Get("/items", canView, h.Inventory.GetItems)
	protected.Get("/items/search", canView, h.Inventory.SearchItems)
	protected.Get("/items/:id", canView, h.Inventory.GetItem)
	protected.Post("/items", h.Inventory.CreateItem)
	protected.Put("/items/:id", h.Inventory.UpdateQuantity)
	protected.Delete("/items/:id", h.Inventory.DeleteItem)

	// Import / export
	protected.Post("/import", h.Transfer.Import)
	protected.Get("/export", canView, h.Transfer.Export)

	// User management
	protected.Get("/users", h.User.GetUsers)
	protected.Get("/users/:id", h.User.GetUser)
	protected.Post("/users", h.User.CreateUser)
	protected.Put("/users/:id", h.User.UpdateUser)
	protected.Delete("/users/:id", h.User.DeleteUser)
	protected.Get("/roles", h.Role.GetRoles)
	protected.Get("/roles/:role/permissions", h.Role.GetRolePermissions)

	// Audit log
	protected.Get("/audit-logs", canView, h.Audit.GetLogs)
	protected.Put("/audit-logs/:id/notes", h.Audit.UpdateNotes)

	// Sheets sync and setup
	protected.Get("/sync", h.Sync.GetStatus)
	protected.Post("/sync/:domain", h.Sync.Trigger)
	protected.Get("/setup/status", h.Setup.GetStatus)
	protected.Post("/setup/verify", h.Setup.Verify)
}
