package handlers

import (
	"fmt"
	"log"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/models"
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
)

// GroupHandler handles HTTP requests for role group membership.
type GroupHandler struct {
	service *services.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(service *services.GroupService) *GroupHandler {
	return &GroupHandler{
		service: service,
	}
}

// RegisterRoutes registers the group membership routes with the Fiber app.
func (h *GroupHandler) RegisterRoutes(router fiber.Router) {
	managerRoutes := router.Group("/groups/manager/users")
	managerRoutes.Get("/", h.handleMembers(models.GroupManager))
	managerRoutes.Post("/", h.handleAdd(models.GroupManager))
	managerRoutes.Delete("/:userId", h.handleRemove(models.GroupManager))

	crewRoutes := router.Group("/groups/delivery-crew/users")
	crewRoutes.Get("/", h.handleMembers(models.GroupDeliveryCrew))
	crewRoutes.Post("/", h.handleAdd(models.GroupDeliveryCrew))
	crewRoutes.Delete("/:userId", h.handleRemove(models.GroupDeliveryCrew))
}

// handleMembers lists the members of the group.
func (h *GroupHandler) handleMembers(groupName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := h.service.Members(callerFromCtx(c), groupName)
		if err != nil {
			log.Printf("Error listing %s group members: %v", groupName, err)
			return errorResponse(c, err)
		}
		// Strip password hashes before serializing
		for i := range users {
			users[i].Password = ""
		}
		return c.JSON(users)
	}
}

// AddGroupMemberRequest represents the request body for adding a group member.
type AddGroupMemberRequest struct {
	Username string `json:"username"`
}

// handleAdd puts the named user into the group.
func (h *GroupHandler) handleAdd(groupName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req AddGroupMemberRequest
		if err := c.BodyParser(&req); err != nil {
			log.Printf("Error parsing group member body: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
		}
		if req.Username == "" {
			return errorResponse(c, fmt.Errorf("%w: username is required", apperrors.ErrValidation))
		}

		if err := h.service.Add(callerFromCtx(c), groupName, req.Username); err != nil {
			log.Printf("Error adding %s to %s group: %v", req.Username, groupName, err)
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "created",
		})
	}
}

// handleRemove takes the named user out of the group.
func (h *GroupHandler) handleRemove(groupName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := c.Params("userId")
		if err := h.service.Remove(callerFromCtx(c), groupName, username); err != nil {
			log.Printf("Error removing %s from %s group: %v", username, groupName, err)
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{
			"message": "Ok",
		})
	}
}
