package repositories

import (
	"fmt"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders with their items.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order with its items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: order with ID %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByDeliveryCrew retrieves all orders assigned to the given crew member.
func (r *GORMOrderRepository) GetByDeliveryCrew(crewID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Find(&orders, "delivery_crew_id = ?", crewID).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for delivery crew %s: %w", crewID, err)
	}
	return orders, nil
}

// GetItemsByUser retrieves the order items of every order owned by the user.
func (r *GORMOrderRepository) GetItemsByUser(userID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ?", userID).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get order items for user %s: %w", userID, err)
	}
	return items, nil
}

// CreateFromCart persists the order header plus its item snapshots and clears
// the user's cart, all inside one transaction. A failure at any step rolls
// back the whole operation so no partial order can persist.
func (r *GORMOrderRepository) CreateFromCart(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := tx.Create(&order.Items[i]).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}
		if err := tx.Delete(&models.CartLine{}, "user_id = ?", order.UserID).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("order checkout transaction failed: %w", err)
	}
	return nil
}

// Update saves mutable order fields (delivery crew assignment, status).
func (r *GORMOrderRepository) Update(order *models.Order) error {
	res := r.db.Omit("Items").Save(order)
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: order with ID %s", apperrors.ErrNotFound, order.ID)
	}
	return nil
}

// Delete removes the order and cascades deletion of its items.
func (r *GORMOrderRepository) Delete(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Order{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order with ID %s", apperrors.ErrNotFound, id)
		}
		// SQLite does not enforce the cascade without foreign_keys pragma,
		// so delete the items explicitly in the same transaction.
		if err := tx.Delete(&models.OrderItem{}, "order_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		return nil
	})
	return err
}
