package services_test

import (
	"fmt"
	"testing"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/models"
	"littlelemon/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderService(orderRepo *MockOrderRepository, cartRepo *MockCartRepository, userRepo *MockUserRepository) *services.OrderService {
	return services.NewOrderService(orderRepo, cartRepo, userRepo, nil) // nil for RabbitMQ client
}

func TestOrderService_Place(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockUserRepo := new(MockUserRepository)
	service := newOrderService(mockOrderRepo, mockCartRepo, mockUserRepo)

	customer := services.Caller{UserID: "c-1", Role: services.RoleCustomer}

	// Item A: qty 2 at 5.00, item B: qty 1 at 3.00 -> total 13.00
	lines := []models.CartLine{
		{ID: "l-1", UserID: "c-1", MenuItemID: "item-a", Quantity: 2, UnitPrice: 5.00, Price: 10.00},
		{ID: "l-2", UserID: "c-1", MenuItemID: "item-b", Quantity: 1, UnitPrice: 3.00, Price: 3.00},
	}

	mockCartRepo.On("GetByUser", "c-1").Return(lines, nil).Once()
	mockOrderRepo.On("CreateFromCart", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	order, err := service.Place(customer)
	assert.NoError(t, err)
	assert.Equal(t, "c-1", order.UserID)
	assert.Equal(t, 13.00, order.Total)
	assert.Equal(t, models.StatusPlaced, order.Status)
	assert.Nil(t, order.DeliveryCrewID)
	assert.Len(t, order.Items, 2)

	// The order total equals the sum of its item prices
	var itemSum float64
	for _, item := range order.Items {
		itemSum += item.Price
	}
	assert.Equal(t, order.Total, itemSum)

	// Item snapshots carry the cart line values
	assert.Equal(t, "item-a", order.Items[0].MenuItemID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 5.00, order.Items[0].UnitPrice)
	mockCartRepo.AssertExpectations(t)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_Place_EmptyCart(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockUserRepo := new(MockUserRepository)
	service := newOrderService(mockOrderRepo, mockCartRepo, mockUserRepo)

	customer := services.Caller{UserID: "c-1", Role: services.RoleCustomer}

	mockCartRepo.On("GetByUser", "c-1").Return([]models.CartLine{}, nil).Once()

	order, err := service.Place(customer)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	// No order creation was attempted
	mockOrderRepo.AssertNotCalled(t, "CreateFromCart", mock.Anything)
	mockCartRepo.AssertExpectations(t)
}

func TestOrderService_Place_TransactionFailure(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockUserRepo := new(MockUserRepository)
	service := newOrderService(mockOrderRepo, mockCartRepo, mockUserRepo)

	customer := services.Caller{UserID: "c-1", Role: services.RoleCustomer}
	lines := []models.CartLine{
		{ID: "l-1", UserID: "c-1", MenuItemID: "item-a", Quantity: 1, UnitPrice: 5.00, Price: 5.00},
	}

	mockCartRepo.On("GetByUser", "c-1").Return(lines, nil).Once()
	mockOrderRepo.On("CreateFromCart", mock.AnythingOfType("*models.Order")).
		Return(fmt.Errorf("order checkout transaction failed: item insert failed")).Once()

	order, err := service.Place(customer)
	assert.Nil(t, order)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to place order")
	// The cart is never cleared outside the checkout transaction
	mockCartRepo.AssertNotCalled(t, "ClearByUser", mock.Anything)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_Place_NonCustomer(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockUserRepo := new(MockUserRepository)
	service := newOrderService(mockOrderRepo, mockCartRepo, mockUserRepo)

	for _, role := range []services.Role{services.RoleManager, services.RoleDeliveryCrew} {
		_, err := service.Place(services.Caller{UserID: "u-1", Role: role})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	}
	mockCartRepo.AssertNotCalled(t, "GetByUser", mock.Anything)
}

func TestOrderService_ListFor(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockUserRepo := new(MockUserRepository)
	service := newOrderService(mockOrderRepo, mockCartRepo, mockUserRepo)

	// Customer sees only their own order items
	ownItems := []models.OrderItem{{ID: "oi-1", OrderID: "o-1", MenuItemID: "item-a", Quantity: 1, Price: 5.00}}
	mockOrderRepo.On("GetItemsByUser", "c-1").Return(ownItems, nil).Once()

	listing, err := service.ListFor(services.Caller{UserID: "c-1", Role: services.RoleCustomer})
	assert.NoError(t, err)
	assert.Equal(t, ownItems, listing.Items)
	assert.Nil(t, listing.Orders)

	// Manager sees all orders system-wide
	allOrders := []models.Order{{ID: "o-1", UserID: "c-1"}, {ID: "o-2", UserID: "c-2"}}
	mockOrderRepo.On("GetAll").Return(allOrders, nil).Once()

	listing, err = service.ListFor(services.Caller{UserID: "m-1", Role: services.RoleManager})
	assert.NoError(t, err)
	assert.Equal(t, allOrders, listing.Orders)

	// Delivery crew sees only orders assigned to them
	crewID := "d-1"
	assigned := []models.Order{{ID: "o-2", UserID: "c-2", DeliveryCrewID: &crewID}}
	mockOrderRepo.On("GetByDeliveryCrew", "d-1").Return(assigned, nil).Once()

	listing, err = service.ListFor(services.Caller{UserID: "d-1", Role: services.RoleDeliveryCrew})
	assert.NoError(t, err)
	assert.Equal(t, assigned, listing.Orders)

	// An unrecognized role is rejected
	_, err = service.ListFor(services.Caller{UserID: "x-1", Role: services.Role(99)})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_Detail(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockUserRepo := new(MockUserRepository)
	service := newOrderService(mockOrderRepo, mockCartRepo, mockUserRepo)

	order := &models.Order{
		ID:     "o-1",
		UserID: "c-1",
		Items:  []models.OrderItem{{ID: "oi-1", OrderID: "o-1", MenuItemID: "item-a", Quantity: 1, Price: 5.00}},
	}

	// Owner sees the items
	mockOrderRepo.On("GetByID", "o-1").Return(order, nil).Once()
	items, err := service.Detail(services.Caller{UserID: "c-1", Role: services.RoleCustomer}, "o-1")
	assert.NoError(t, err)
	assert.Equal(t, order.Items, items)

	// Another customer is forbidden
	mockOrderRepo.On("GetByID", "o-1").Return(order, nil).Once()
	_, err = service.Detail(services.Caller{UserID: "c-2", Role: services.RoleCustomer}, "o-1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// Non-customers are forbidden
	_, err = service.Detail(services.Caller{UserID: "m-1", Role: services.RoleManager}, "o-1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// Unknown order
	mockOrderRepo.On("GetByID", "ghost").Return(nil, fmt.Errorf("%w: order with ID ghost", apperrors.ErrNotFound)).Once()
	_, err = service.Detail(services.Caller{UserID: "c-1", Role: services.RoleCustomer}, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_Update_ManagerAssignsCrew(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockUserRepo := new(MockUserRepository)
	service := newOrderService(mockOrderRepo, mockCartRepo, mockUserRepo)

	manager := services.Caller{UserID: "m-1", Role: services.RoleManager}
	crewID := "d-1"
	crew := &models.User{ID: "d-1", Username: "crew1", Groups: []models.Group{{Name: models.GroupDeliveryCrew}}}

	// Manager assigns crew, regardless of current assignment
	existingCrew := "d-0"
	order := &models.Order{ID: "o-7", UserID: "c-1", Status: models.StatusPlaced, DeliveryCrewID: &existingCrew}
	mockOrderRepo.On("GetByID", "o-7").Return(order, nil).Once()
	mockUserRepo.On("GetByID", "d-1").Return(crew, nil).Once()
	mockOrderRepo.On("Update", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	updated, err := service.Update(manager, "o-7", services.OrderPatch{DeliveryCrewID: &crewID})
	assert.NoError(t, err)
	assert.Equal(t, "d-1", *updated.DeliveryCrewID)
	assert.Equal(t, models.StatusPlaced, updated.Status) // no other side effect

	// Missing field fails validation
	mockOrderRepo.On("GetByID", "o-7").Return(order, nil).Once()
	_, err = service.Update(manager, "o-7", services.OrderPatch{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Assigning a user who is not delivery crew fails validation
	plainUser := &models.User{ID: "c-9", Username: "notcrew"}
	plainID := "c-9"
	mockOrderRepo.On("GetByID", "o-7").Return(order, nil).Once()
	mockUserRepo.On("GetByID", "c-9").Return(plainUser, nil).Once()
	_, err = service.Update(manager, "o-7", services.OrderPatch{DeliveryCrewID: &plainID})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Assigning an unknown user is a not-found failure
	ghostID := "ghost"
	mockOrderRepo.On("GetByID", "o-7").Return(order, nil).Once()
	mockUserRepo.On("GetByID", "ghost").Return(nil, fmt.Errorf("%w: user with ID ghost", apperrors.ErrNotFound)).Once()
	_, err = service.Update(manager, "o-7", services.OrderPatch{DeliveryCrewID: &ghostID})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	mockOrderRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestOrderService_Update_CrewSetsStatus(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockUserRepo := new(MockUserRepository)
	service := newOrderService(mockOrderRepo, mockCartRepo, mockUserRepo)

	assignedCrew := "d-1"
	status := models.StatusOutForDelivery

	// The assigned crew member can set the status
	order := &models.Order{ID: "o-7", UserID: "c-1", Status: models.StatusPlaced, DeliveryCrewID: &assignedCrew}
	mockOrderRepo.On("GetByID", "o-7").Return(order, nil).Once()
	mockOrderRepo.On("Update", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	updated, err := service.Update(services.Caller{UserID: "d-1", Role: services.RoleDeliveryCrew}, "o-7", services.OrderPatch{Status: &status})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusOutForDelivery, updated.Status)

	// A crew member the order is not assigned to is forbidden, order unmodified
	order2 := &models.Order{ID: "o-7", UserID: "c-1", Status: models.StatusPlaced, DeliveryCrewID: &assignedCrew}
	mockOrderRepo.On("GetByID", "o-7").Return(order2, nil).Once()
	_, err = service.Update(services.Caller{UserID: "d-2", Role: services.RoleDeliveryCrew}, "o-7", services.OrderPatch{Status: &status})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Equal(t, models.StatusPlaced, order2.Status)

	// An unassigned order cannot have its status set
	unassigned := &models.Order{ID: "o-8", UserID: "c-1", Status: models.StatusPlaced}
	mockOrderRepo.On("GetByID", "o-8").Return(unassigned, nil).Once()
	_, err = service.Update(services.Caller{UserID: "d-1", Role: services.RoleDeliveryCrew}, "o-8", services.OrderPatch{Status: &status})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// Missing status field fails validation
	order3 := &models.Order{ID: "o-7", UserID: "c-1", Status: models.StatusPlaced, DeliveryCrewID: &assignedCrew}
	mockOrderRepo.On("GetByID", "o-7").Return(order3, nil).Once()
	_, err = service.Update(services.Caller{UserID: "d-1", Role: services.RoleDeliveryCrew}, "o-7", services.OrderPatch{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Unknown status value fails validation
	bogus := "teleported"
	order4 := &models.Order{ID: "o-7", UserID: "c-1", Status: models.StatusPlaced, DeliveryCrewID: &assignedCrew}
	mockOrderRepo.On("GetByID", "o-7").Return(order4, nil).Once()
	_, err = service.Update(services.Caller{UserID: "d-1", Role: services.RoleDeliveryCrew}, "o-7", services.OrderPatch{Status: &bogus})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_Update_CustomerForbidden(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockUserRepo := new(MockUserRepository)
	service := newOrderService(mockOrderRepo, mockCartRepo, mockUserRepo)

	status := models.StatusDelivered
	order := &models.Order{ID: "o-1", UserID: "c-1", Status: models.StatusPlaced}
	mockOrderRepo.On("GetByID", "o-1").Return(order, nil).Once()

	// Even the owning customer cannot mutate order fields
	_, err := service.Update(services.Caller{UserID: "c-1", Role: services.RoleCustomer}, "o-1", services.OrderPatch{Status: &status})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockOrderRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestOrderService_Delete(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockUserRepo := new(MockUserRepository)
	service := newOrderService(mockOrderRepo, mockCartRepo, mockUserRepo)

	// Manager deletes
	mockOrderRepo.On("Delete", "o-1").Return(nil).Once()
	err := service.Delete(services.Caller{UserID: "m-1", Role: services.RoleManager}, "o-1")
	assert.NoError(t, err)

	// Non-managers are forbidden
	err = service.Delete(services.Caller{UserID: "c-1", Role: services.RoleCustomer}, "o-1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	err = service.Delete(services.Caller{UserID: "d-1", Role: services.RoleDeliveryCrew}, "o-1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// Unknown order
	mockOrderRepo.On("Delete", "ghost").Return(fmt.Errorf("%w: order with ID ghost", apperrors.ErrNotFound)).Once()
	err = service.Delete(services.Caller{UserID: "m-1", Role: services.RoleManager}, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockOrderRepo.AssertExpectations(t)
}
