package handler

import (
	"go-inventory-sheets/internal/middleware"
	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/internal/service"
	"go-inventory-sheets/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// GET /api/v1/shelves
func (h *InventoryHandler) GetLayout(c *fiber.Ctx) error {
	return c.JSON(model.Layout())
}

// GET /api/v1/shelves/:rack/:shelf
func (h *InventoryHandler) GetShelf(c *fiber.Ctx) error {
	rack, shelf := c.Params("rack"), c.Params("shelf")
	items, err := h.service.ShelfItems(rack, shelf)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"location": rack + "-" + shelf,
		"items":    items,
	})
}

// GET /api/v1/items
func (h *InventoryHandler) GetItems(c *fiber.Ctx) error {
	return c.JSON(h.service.ListItems())
}

// GET /api/v1/items/search?q=
func (h *InventoryHandler) SearchItems(c *fiber.Ctx) error {
	return c.JSON(h.service.Search(c.Query("q")))
}

// GET /api/v1/items/:id
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.service.GetItem(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// POST /api/v1/items
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var req service.AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	item, err := h.service.AddItem(middleware.CurrentUser(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Item added", "data": item})
}

// PUT /api/v1/items/:id
func (h *InventoryHandler) UpdateQuantity(c *fiber.Ctx) error {
	var req service.UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return respondError(c, service.ErrInvalidQuantity)
	}

	item, err := h.service.UpdateQuantity(middleware.CurrentUser(c), c.Params("id"), *req.Quantity)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Quantity updated", "data": item})
}

// DELETE /api/v1/items/:id
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.service.DeleteItem(middleware.CurrentUser(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted"})
}
