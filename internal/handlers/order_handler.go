package handlers

import (
	"log"

	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Post("/", h.HandlePlaceOrder)
	orderRoutes.Get("/:id", h.HandleOrderDetail)
	orderRoutes.Patch("/:id", h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

// HandleListOrders returns the orders visible to the caller. Customers see
// their own order items, managers see all orders, delivery crew see orders
// assigned to them.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	caller := callerFromCtx(c)
	listing, err := h.service.ListFor(caller)
	if err != nil {
		log.Printf("Error listing orders for user %s: %v", caller.UserID, err)
		return errorResponse(c, err)
	}
	if listing.Items != nil {
		return c.JSON(listing.Items)
	}
	return c.JSON(listing.Orders)
}

// HandlePlaceOrder converts the caller's cart into an order.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	caller := callerFromCtx(c)
	order, err := h.service.Place(caller)
	if err != nil {
		log.Printf("Error placing order for user %s: %v", caller.UserID, err)
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleOrderDetail returns the items of one of the caller's own orders.
func (h *OrderHandler) HandleOrderDetail(c *fiber.Ctx) error {
	caller := callerFromCtx(c)
	orderID := c.Params("id")

	items, err := h.service.Detail(caller, orderID)
	if err != nil {
		log.Printf("Error getting order %s detail: %v", orderID, err)
		return errorResponse(c, err)
	}
	return c.JSON(items)
}

// HandleUpdateOrder applies a partial update: delivery crew assignment by a
// manager, or a status change by the assigned crew member.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	caller := callerFromCtx(c)
	orderID := c.Params("id")

	var patch services.OrderPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing order patch body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.Update(caller, orderID, patch)
	if err != nil {
		log.Printf("Error updating order %s: %v", orderID, err)
		return errorResponse(c, err)
	}
	return c.JSON(order)
}

// HandleDeleteOrder deletes an order and its items. Manager only.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	caller := callerFromCtx(c)
	orderID := c.Params("id")

	if err := h.service.Delete(caller, orderID); err != nil {
		log.Printf("Error deleting order %s: %v", orderID, err)
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order " + orderID + " deleted successfully",
	})
}
