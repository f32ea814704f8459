package services

import (
	"fmt"
	"log"
	"time"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/models"
	"littlelemon/internal/repositories"
	"littlelemon/pkg/rabbitmq"

	"github.com/google/uuid"
)

// OrderService owns the order lifecycle: checkout, role-gated listing,
// delivery crew assignment, status transitions and deletion.
type OrderService struct {
	orderRepo repositories.OrderRepository
	cartRepo  repositories.CartRepository
	userRepo  repositories.UserRepository
	mqClient  *rabbitmq.Client // RabbitMQ client, nil tolerated
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, userRepo repositories.UserRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		mqClient:  mqClient,
	}
}

// OrderListing is the role-dependent result of listing orders: customers get
// their own order items, managers and delivery crew get order records.
type OrderListing struct {
	Orders []models.Order     `json:"orders,omitempty"`
	Items  []models.OrderItem `json:"order_items,omitempty"`
}

// OrderPatch carries the partial-update fields of an order. A full replace of
// an order is unsupported; no operation exists for it.
type OrderPatch struct {
	DeliveryCrewID *string `json:"delivery_crew_id"`
	Status         *string `json:"status"`
}

// Place converts the caller's cart contents into an order. The order header,
// its item snapshots and the cart clear happen in one transaction: a failure
// partway through leaves no partial order and the cart untouched.
func (s *OrderService) Place(caller Caller) (*models.Order, error) {
	if caller.Role != RoleCustomer {
		return nil, fmt.Errorf("%w: only customers can place orders", apperrors.ErrForbidden)
	}

	lines, err := s.cartRepo.GetByUser(caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	var total float64
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		total += line.Price
		items = append(items, models.OrderItem{
			ID:         uuid.New().String(),
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			Price:      line.Price,
		})
	}

	order := &models.Order{
		ID:     uuid.New().String(),
		UserID: caller.UserID,
		Total:  total,
		Status: models.StatusPlaced,
		Date:   time.Now(),
		Items:  items,
	}

	if err := s.orderRepo.CreateFromCart(order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.publishEvent("order.placed", map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.Total,
	})

	return order, nil
}

// ListFor returns the orders visible to the caller. The match is an explicit
// ordered evaluation over the role enum: customer, then manager, then
// delivery crew, first match wins.
func (s *OrderService) ListFor(caller Caller) (*OrderListing, error) {
	switch caller.Role {
	case RoleCustomer:
		items, err := s.orderRepo.GetItemsByUser(caller.UserID)
		if err != nil {
			return nil, err
		}
		return &OrderListing{Items: items}, nil
	case RoleManager:
		orders, err := s.orderRepo.GetAll()
		if err != nil {
			return nil, err
		}
		return &OrderListing{Orders: orders}, nil
	case RoleDeliveryCrew:
		orders, err := s.orderRepo.GetByDeliveryCrew(caller.UserID)
		if err != nil {
			return nil, err
		}
		return &OrderListing{Orders: orders}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized role", apperrors.ErrForbidden)
	}
}

// Detail returns the items of a single order. Only the customer owning the
// order may see them.
func (s *OrderService) Detail(caller Caller, orderID string) ([]models.OrderItem, error) {
	if caller.Role != RoleCustomer {
		return nil, fmt.Errorf("%w: only customers can view order detail", apperrors.ErrForbidden)
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != caller.UserID {
		return nil, fmt.Errorf("%w: order belongs to another customer", apperrors.ErrForbidden)
	}
	return order.Items, nil
}

// Update applies a role-gated partial update to an order. Managers assign the
// delivery crew; the assigned crew member updates the fulfillment status.
func (s *OrderService) Update(caller Caller, orderID string, patch OrderPatch) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	switch caller.Role {
	case RoleManager:
		if patch.DeliveryCrewID == nil {
			return nil, fmt.Errorf("%w: delivery_crew_id is required", apperrors.ErrValidation)
		}
		crew, err := s.userRepo.GetByID(*patch.DeliveryCrewID)
		if err != nil {
			return nil, err
		}
		if !crew.InGroup(models.GroupDeliveryCrew) {
			return nil, fmt.Errorf("%w: user %s is not delivery crew", apperrors.ErrValidation, crew.ID)
		}
		order.DeliveryCrewID = &crew.ID
		if err := s.orderRepo.Update(order); err != nil {
			return nil, fmt.Errorf("failed to assign delivery crew: %w", err)
		}
		s.publishEvent("order.assigned", map[string]interface{}{
			"orderID": order.ID,
			"crewID":  crew.ID,
		})
		return order, nil

	case RoleDeliveryCrew:
		if patch.Status == nil {
			return nil, fmt.Errorf("%w: status is required", apperrors.ErrValidation)
		}
		if order.DeliveryCrewID == nil || *order.DeliveryCrewID != caller.UserID {
			return nil, fmt.Errorf("%w: order is not assigned to caller", apperrors.ErrForbidden)
		}
		if !models.ValidStatus(*patch.Status) {
			return nil, fmt.Errorf("%w: invalid order status %s", apperrors.ErrValidation, *patch.Status)
		}
		order.Status = *patch.Status
		if err := s.orderRepo.Update(order); err != nil {
			return nil, fmt.Errorf("failed to update order status: %w", err)
		}
		s.publishEvent("order.status_updated", map[string]interface{}{
			"orderID": order.ID,
			"status":  order.Status,
		})
		return order, nil

	default:
		return nil, fmt.Errorf("%w: customers cannot modify orders", apperrors.ErrForbidden)
	}
}

// Delete removes an order and its items. Manager only.
func (s *OrderService) Delete(caller Caller, orderID string) error {
	if caller.Role != RoleManager {
		return fmt.Errorf("%w: only managers can delete orders", apperrors.ErrForbidden)
	}
	if err := s.orderRepo.Delete(orderID); err != nil {
		return err
	}
	s.publishEvent("order.deleted", map[string]interface{}{
		"orderID": orderID,
	})
	return nil
}

// publishEvent publishes an order lifecycle event, best effort. A nil client
// or a publish failure never fails the operation.
func (s *OrderService) publishEvent(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishOrderEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
