package handlers

import (
	"fmt"
	"log"

	"littlelemon/internal/models"
	"littlelemon/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MenuHandler handles HTTP requests for the menu catalog.
type MenuHandler struct {
	service  *services.MenuService
	validate *validator.Validate
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(service *services.MenuService) *MenuHandler {
	return &MenuHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the menu routes with the Fiber app.
func (h *MenuHandler) RegisterRoutes(router fiber.Router) {
	menuRoutes := router.Group("/menu-items")
	menuRoutes.Get("/", h.HandleGetMenuItems)
	menuRoutes.Get("/:id", h.HandleGetMenuItemByID)
	menuRoutes.Post("/", h.HandleCreateMenuItem)
	menuRoutes.Put("/:id", h.HandleUpdateMenuItem)
	menuRoutes.Delete("/:id", h.HandleDeleteMenuItem)
}

// HandleGetMenuItems retrieves all menu items.
func (h *MenuHandler) HandleGetMenuItems(c *fiber.Ctx) error {
	items, err := h.service.GetAll()
	if err != nil {
		log.Printf("Error getting all menu items: %v", err)
		return errorResponse(c, err)
	}
	return c.JSON(items)
}

// HandleGetMenuItemByID retrieves a single menu item by its ID.
func (h *MenuHandler) HandleGetMenuItemByID(c *fiber.Ctx) error {
	itemID := c.Params("id")
	item, err := h.service.GetByID(itemID)
	if err != nil {
		log.Printf("Error getting menu item by ID %s: %v", itemID, err)
		return errorResponse(c, err)
	}
	return c.JSON(item)
}

// HandleCreateMenuItem creates a new menu item. Manager only.
func (h *MenuHandler) HandleCreateMenuItem(c *fiber.Ctx) error {
	var item models.MenuItem
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing menu item body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(item); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.service.Create(callerFromCtx(c), &item); err != nil {
		log.Printf("Error creating menu item: %v", err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateMenuItem updates an existing menu item. Manager only.
func (h *MenuHandler) HandleUpdateMenuItem(c *fiber.Ctx) error {
	var item models.MenuItem
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing menu item body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	item.ID = c.Params("id")

	if err := h.service.Update(callerFromCtx(c), &item); err != nil {
		log.Printf("Error updating menu item %s: %v", item.ID, err)
		return errorResponse(c, err)
	}
	return c.JSON(item)
}

// HandleDeleteMenuItem deletes a menu item by its ID. Manager only.
func (h *MenuHandler) HandleDeleteMenuItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if err := h.service.Delete(callerFromCtx(c), itemID); err != nil {
		log.Printf("Error deleting menu item %s: %v", itemID, err)
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Menu item " + itemID + " deleted successfully",
	})
}
