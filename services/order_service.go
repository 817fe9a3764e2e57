package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/GiaSoPas/RestaurantManagementSystem/models"
)

// OrderService coordinates the order lifecycle and keeps table occupancy,
// order status and item status consistent. Every compound operation runs in
// a single transaction with the affected table and order rows locked, so
// concurrent requests against the same table or order serialize.
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates an order service on top of the given database
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrderInput describes a new order: the table to seat it on and the
// requested menu items.
type CreateOrderInput struct {
	TableID uint
	Items   []CreateOrderItemInput
}

// CreateOrderItemInput is one requested line of a new order
type CreateOrderItemInput struct {
	MenuItemID uint
	Quantity   int
	Note       string
}

// CreateOrder validates table and menu item availability, prices the order,
// creates it together with its items and reserves the table, all in one
// transaction. The table row is locked before the availability check so two
// concurrent creations against the same table cannot both succeed.
func (s *OrderService) CreateOrder(input CreateOrderInput, userID uint) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", ErrMenuItemUnavailable)
	}

	var orderID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := lockForUpdate(tx).First(&table, input.TableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: table %d", ErrNotFound, input.TableID)
			}
			return err
		}

		if table.StatusID != models.TableStatusAvailable {
			return fmt.Errorf("%w: table %d", ErrTableUnavailable, table.ID)
		}

		// All-or-nothing availability check over the requested menu items.
		menuItemIDs := make([]uint, 0, len(input.Items))
		for _, item := range input.Items {
			menuItemIDs = append(menuItemIDs, item.MenuItemID)
		}

		var menuItems []models.MenuItem
		if err := tx.Where("id IN ?", menuItemIDs).Find(&menuItems).Error; err != nil {
			return err
		}
		menuItemsByID := make(map[uint]models.MenuItem, len(menuItems))
		for _, item := range menuItems {
			menuItemsByID[item.ID] = item
		}

		var totalPrice float64
		orderItems := make([]models.OrderItem, 0, len(input.Items))
		for _, item := range input.Items {
			menuItem, ok := menuItemsByID[item.MenuItemID]
			if !ok || !menuItem.IsAvailable {
				return fmt.Errorf("%w: menu item %d", ErrMenuItemUnavailable, item.MenuItemID)
			}
			if item.Quantity < 1 {
				return fmt.Errorf("%w: menu item %d has quantity %d", ErrMenuItemUnavailable, item.MenuItemID, item.Quantity)
			}

			// Name and price are captured here so later catalog edits do not
			// change historical orders.
			orderItems = append(orderItems, models.OrderItem{
				MenuItemID:   menuItem.ID,
				MenuItemName: menuItem.Name,
				Price:        menuItem.Price,
				Quantity:     item.Quantity,
				Note:         item.Note,
				StatusID:     models.ItemStatusNew,
			})
			totalPrice += menuItem.Price * float64(item.Quantity)
		}

		order := models.Order{
			TableID:    table.ID,
			UserID:     userID,
			StatusID:   models.OrderStatusNew,
			TotalPrice: totalPrice,
			OrderItems: orderItems,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Table{}).Where("id = ?", table.ID).Updates(map[string]interface{}{
			"status_id":        models.TableStatusOccupied,
			"current_order_id": order.ID,
		}).Error; err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(orderID)
}

// GetOrder returns the full order view: status, table, waiter, items with
// their statuses, and recorded payments.
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("Status").
		Preload("Table").
		Preload("Table.Status").
		Preload("User").
		Preload("User.Role").
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id ASC")
		}).
		Preload("OrderItems.Status").
		Preload("OrderItems.MenuItem").
		Preload("Payments").
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	return &order, nil
}

// GetActiveOrders returns all orders that have not reached Served or
// Cancelled, newest first.
func (s *OrderService) GetActiveOrders() ([]models.Order, error) {
	var orders []models.Order
	err := s.db.
		Preload("Status").
		Preload("Table").
		Preload("Table.Status").
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id ASC")
		}).
		Preload("OrderItems.Status").
		Where("status_id NOT IN ?", models.TerminalOrderStatusIDs()).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus transitions an order to a new status within the order
// domain. A transition to Served or Cancelled stamps the closing timestamp
// and frees the owning table in the same transaction. Orders that are
// already closed cannot be transitioned again.
func (s *OrderService) UpdateOrderStatus(orderID uint, statusID uint) (*models.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := lockForUpdate(tx).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		if _, err := ResolveStatus(tx, models.StatusTypeOrder, statusID); err != nil {
			return err
		}

		if order.IsTerminal() {
			return fmt.Errorf("%w: order %d", ErrOrderClosed, orderID)
		}

		updates := map[string]interface{}{"status_id": statusID}
		if models.IsTerminalOrderStatus(statusID) {
			updates["closed_at"] = time.Now().UTC()
			if err := freeTable(tx, order.TableID); err != nil {
				return err
			}
		}

		return tx.Model(&order).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(orderID)
}

// UpdateOrderItemStatus transitions one line item within the item-status
// domain. Item transitions never cascade to the order or the table; any
// rollup policy belongs to the caller.
func (s *OrderService) UpdateOrderItemStatus(orderID, itemID, statusID uint) (*models.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.OrderItem
		if err := tx.Where("id = ? AND order_id = ?", itemID, orderID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: item %d on order %d", ErrNotFound, itemID, orderID)
			}
			return err
		}

		if _, err := ResolveStatus(tx, models.StatusTypeItem, statusID); err != nil {
			return err
		}

		return tx.Model(&item).Update("status_id", statusID).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(orderID)
}

// CancelOrder cancels an order, freeing its table and stamping the closing
// timestamp. Cancelling an order that is already Served or Cancelled is not
// an error: it returns false to signal there was nothing to cancel.
func (s *OrderService) CancelOrder(orderID uint) (bool, error) {
	cancelled := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := lockForUpdate(tx).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		if order.IsTerminal() {
			return nil
		}

		if err := tx.Model(&order).Updates(map[string]interface{}{
			"status_id": models.OrderStatusCancelled,
			"closed_at": time.Now().UTC(),
		}).Error; err != nil {
			return err
		}

		if err := freeTable(tx, order.TableID); err != nil {
			return err
		}

		cancelled = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return cancelled, nil
}

// RecordPayment attaches a payment record to an order. Payments are stored
// as-is; nothing reconciles them against the order total.
func (s *OrderService) RecordPayment(orderID uint, amount float64, method string) (*models.Payment, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}

	payment := models.Payment{
		OrderID:       order.ID,
		Amount:        amount,
		PaymentMethod: method,
		PaidAt:        time.Now().UTC(),
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// freeTable releases a table after its order closes: status back to
// Available, current-order reference cleared. Runs inside the caller's
// transaction.
func freeTable(tx *gorm.DB, tableID uint) error {
	return tx.Model(&models.Table{}).Where("id = ?", tableID).Updates(map[string]interface{}{
		"status_id":        models.TableStatusAvailable,
		"current_order_id": nil,
	}).Error
}
