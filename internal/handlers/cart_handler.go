package handlers

import (
	"fmt"
	"log"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the customer cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddToCart)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// requireCustomer rejects managers and delivery crew; the cart belongs to
// customers only.
func (h *CartHandler) requireCustomer(c *fiber.Ctx) (services.Caller, error) {
	caller := callerFromCtx(c)
	if caller.Role != services.RoleCustomer {
		return caller, fmt.Errorf("%w: the cart is customer only", apperrors.ErrForbidden)
	}
	return caller, nil
}

// HandleGetCart lists the caller's cart lines.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	caller, err := h.requireCustomer(c)
	if err != nil {
		return errorResponse(c, err)
	}

	lines, err := h.service.List(caller.UserID)
	if err != nil {
		log.Printf("Error listing cart for user %s: %v", caller.UserID, err)
		return errorResponse(c, err)
	}
	return c.JSON(lines)
}

// AddToCartRequest represents the request body for adding a cart line.
type AddToCartRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
}

// HandleAddToCart puts a menu item into the caller's cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	caller, err := h.requireCustomer(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
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

	line, err := h.service.Add(caller.UserID, req.MenuItemID, req.Quantity)
	if err != nil {
		log.Printf("Error adding item to cart for user %s: %v", caller.UserID, err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(line)
}

// HandleClearCart deletes all of the caller's cart lines.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	caller, err := h.requireCustomer(c)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := h.service.Clear(caller.UserID); err != nil {
		log.Printf("Error clearing cart for user %s: %v", caller.UserID, err)
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Ok",
	})
}
