package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/GiaSoPas/RestaurantManagementSystem/config"
	"github.com/GiaSoPas/RestaurantManagementSystem/models"
)

// setupServiceTestDB creates an in-memory database with the full schema and
// reference data: 5 available tables, the menu (Caesar salad 450, Borscht
// 350, Ribeye steak 1200, Tiramisu 350, Latte 250) and the admin user.
func setupServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Status{},
		&models.TableStatus{},
		&models.Table{},
		&models.Category{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	if err := config.Seed(db); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return db
}

func adminUserID(t *testing.T, db *gorm.DB) uint {
	var user models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&user).Error)
	return user.ID
}

func menuItemByName(t *testing.T, db *gorm.DB, name string) *models.MenuItem {
	var item models.MenuItem
	require.NoError(t, db.Where("name = ?", name).First(&item).Error)
	return &item
}

func TestCreateOrder(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)
	userID := adminUserID(t, db)

	caesar := menuItemByName(t, db, "Caesar salad")
	ribeye := menuItemByName(t, db, "Ribeye steak")

	order, err := service.CreateOrder(CreateOrderInput{
		TableID: 3,
		Items: []CreateOrderItemInput{
			{MenuItemID: caesar.ID, Quantity: 2, Note: "no croutons"},
			{MenuItemID: ribeye.ID, Quantity: 1},
		},
	}, userID)
	require.NoError(t, err)

	assert.Equal(t, uint(3), order.TableID)
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, models.OrderStatusNew, order.StatusID)
	assert.Equal(t, 2100.0, order.TotalPrice)
	assert.Nil(t, order.ClosedAt)
	require.Len(t, order.OrderItems, 2)

	// Names and prices are captured on the line items at creation time
	assert.Equal(t, "Caesar salad", order.OrderItems[0].MenuItemName)
	assert.Equal(t, 450.0, order.OrderItems[0].Price)
	assert.Equal(t, 2, order.OrderItems[0].Quantity)
	assert.Equal(t, "no croutons", order.OrderItems[0].Note)
	assert.Equal(t, models.ItemStatusNew, order.OrderItems[0].StatusID)
	assert.Equal(t, "Ribeye steak", order.OrderItems[1].MenuItemName)
	assert.Equal(t, 1200.0, order.OrderItems[1].Price)
	assert.Equal(t, models.ItemStatusNew, order.OrderItems[1].StatusID)

	// The table is reserved in the same transaction
	var table models.Table
	require.NoError(t, db.First(&table, 3).Error)
	assert.Equal(t, models.TableStatusOccupied, table.StatusID)
	require.NotNil(t, table.CurrentOrderID)
	assert.Equal(t, order.ID, *table.CurrentOrderID)
}

func TestCreateOrder_TableNotFound(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)

	_, err := service.CreateOrder(CreateOrderInput{
		TableID: 999,
		Items:   []CreateOrderItemInput{{MenuItemID: 1, Quantity: 1}},
	}, adminUserID(t, db))

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrder_TableUnavailable(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)
	userID := adminUserID(t, db)

	tests := []struct {
		name     string
		statusID uint
	}{
		{"occupied table", models.TableStatusOccupied},
		{"reserved table", models.TableStatusReserved},
		{"table out of service", models.TableStatusUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, db.Model(&models.Table{}).Where("id = ?", 1).
				Update("status_id", tt.statusID).Error)

			_, err := service.CreateOrder(CreateOrderInput{
				TableID: 1,
				Items:   []CreateOrderItemInput{{MenuItemID: 1, Quantity: 1}},
			}, userID)

			assert.ErrorIs(t, err, ErrTableUnavailable)
		})
	}
}

func TestCreateOrder_SecondOrderOnSameTable(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)
	userID := adminUserID(t, db)

	input := CreateOrderInput{
		TableID: 2,
		Items:   []CreateOrderItemInput{{MenuItemID: 1, Quantity: 1}},
	}

	_, err := service.CreateOrder(input, userID)
	require.NoError(t, err)

	// Creating the order switched the table to Occupied, so the second
	// creation against the same table must fail.
	_, err = service.CreateOrder(input, userID)
	assert.ErrorIs(t, err, ErrTableUnavailable)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateOrder_ConcurrentOnSameTable(t *testing.T) {
	db := setupServiceTestDB(t)
	// sqlite hands every connection its own :memory: database, so both
	// transactions must go through the one shared connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	service := NewOrderService(db)
	userID := adminUserID(t, db)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.CreateOrder(CreateOrderInput{
				TableID: 1,
				Items:   []CreateOrderItemInput{{MenuItemID: 1, Quantity: 1}},
			}, userID)
		}(i)
	}
	wg.Wait()

	// Exactly one creation wins, the other finds the table already taken
	if errs[0] == nil {
		assert.ErrorIs(t, errs[1], ErrTableUnavailable)
	} else {
		assert.ErrorIs(t, errs[0], ErrTableUnavailable)
		assert.NoError(t, errs[1])
	}

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var order models.Order
	require.NoError(t, db.First(&order).Error)
	var table models.Table
	require.NoError(t, db.First(&table, 1).Error)
	assert.Equal(t, models.TableStatusOccupied, table.StatusID)
	require.NotNil(t, table.CurrentOrderID)
	assert.Equal(t, order.ID, *table.CurrentOrderID)
}

func TestCreateOrder_UnavailableMenuItemRejectsWholeOrder(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)
	userID := adminUserID(t, db)

	borscht := menuItemByName(t, db, "Borscht")
	require.NoError(t, db.Model(borscht).Update("is_available", false).Error)

	_, err := service.CreateOrder(CreateOrderInput{
		TableID: 1,
		Items: []CreateOrderItemInput{
			{MenuItemID: 1, Quantity: 1},
			{MenuItemID: borscht.ID, Quantity: 1},
		},
	}, userID)
	assert.ErrorIs(t, err, ErrMenuItemUnavailable)

	// Nothing was written and the table was not reserved
	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), itemCount)

	var table models.Table
	require.NoError(t, db.First(&table, 1).Error)
	assert.Equal(t, models.TableStatusAvailable, table.StatusID)
	assert.Nil(t, table.CurrentOrderID)
}

func TestCreateOrder_InvalidItems(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)
	userID := adminUserID(t, db)

	tests := []struct {
		name  string
		items []CreateOrderItemInput
	}{
		{"no items", nil},
		{"unknown menu item", []CreateOrderItemInput{{MenuItemID: 999, Quantity: 1}}},
		{"zero quantity", []CreateOrderItemInput{{MenuItemID: 1, Quantity: 0}}},
		{"negative quantity", []CreateOrderItemInput{{MenuItemID: 1, Quantity: -2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateOrder(CreateOrderInput{TableID: 1, Items: tt.items}, userID)
			assert.ErrorIs(t, err, ErrMenuItemUnavailable)
		})
	}
}

func TestCreateOrder_PriceSurvivesCatalogEdits(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)
	userID := adminUserID(t, db)

	latte := menuItemByName(t, db, "Latte")
	order, err := service.CreateOrder(CreateOrderInput{
		TableID: 1,
		Items:   []CreateOrderItemInput{{MenuItemID: latte.ID, Quantity: 2}},
	}, userID)
	require.NoError(t, err)

	// Raising the catalog price must not rewrite the existing order
	require.NoError(t, db.Model(latte).Update("price", 999.0).Error)

	reloaded, err := service.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, reloaded.OrderItems[0].Price)
	assert.Equal(t, 500.0, reloaded.TotalPrice)
}

func TestGetOrder_NotFound(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)

	_, err := service.GetOrder(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetActiveOrders(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)
	userID := adminUserID(t, db)

	first, err := service.CreateOrder(CreateOrderInput{
		TableID: 1,
		Items:   []CreateOrderItemInput{{MenuItemID: 1, Quantity: 1}},
	}, userID)
	require.NoError(t, err)

	second, err := service.CreateOrder(CreateOrderInput{
		TableID: 2,
		Items:   []CreateOrderItemInput{{MenuItemID: 2, Quantity: 1}},
	}, userID)
	require.NoError(t, err)

	third, err := service.CreateOrder(CreateOrderInput{
		TableID: 3,
		Items:   []CreateOrderItemInput{{MenuItemID: 3, Quantity: 1}},
	}, userID)
	require.NoError(t, err)

	// Close one order each way; both must drop out of the active list
	_, err = service.UpdateOrderStatus(first.ID, models.OrderStatusServed)
	require.NoError(t, err)
	cancelled, err := service.CancelOrder(second.ID)
	require.NoError(t, err)
	require.True(t, cancelled)

	active, err := service.GetActiveOrders()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, third.ID, active[0].ID)
	assert.Equal(t, "New", active[0].Status.Name)
}

func TestUpdateOrderStatus_NonTerminal(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)

	order, err := service.CreateOrder(CreateOrderInput{
		TableID: 1,
		Items:   []CreateOrderItemInput{{MenuItemID: 1, Quantity: 1}},
	}, adminUserID(t, db))
	require.NoError(t, err)

	updated, err := service.UpdateOrderStatus(order.ID, models.OrderStatusInProgress)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusInProgress, updated.StatusID)
	assert.Nil(t, updated.ClosedAt)

	// A non-terminal transition leaves the table alone
	var table models.Table
	require.NoError(t, db.First(&table, 1).Error)
	assert.Equal(t, models.TableStatusOccupied, table.StatusID)
	require.NotNil(t, table.CurrentOrderID)
	assert.Equal(t, order.ID, *table.CurrentOrderID)
}

func TestUpdateOrderStatus_ServedClosesOrderAndFreesTable(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)

	order, err := service.CreateOrder(CreateOrderInput{
		TableID: 4,
		Items:   []CreateOrderItemInput{{MenuItemID: 1, Quantity: 1}},
	}, adminUserID(t, db))
	require.NoError(t, err)

	updated, err := service.UpdateOrderStatus(order.ID, models.OrderStatusServed)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusServed, updated.StatusID)
	require.NotNil(t, updated.ClosedAt)

	var table models.Table
	require.NoError(t, db.First(&table, 4).Error)
	assert.Equal(t, models.TableStatusAvailable, table.StatusID)
	assert.Nil(t, table.CurrentOrderID)
}

func TestUpdateOrderStatus_ClosedOrderCannotTransition(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)

	order, err := service.CreateOrder(CreateOrderInput{
		TableID: 1,
		Items:   []CreateOrderItemInput{{MenuItemID: 1, Quantity: 1}},
	}, adminUserID(t, db))
	require.NoError(t, err)

	served, err := service.UpdateOrderStatus(order.ID, models.OrderStatusServed)
	require.NoError(t, err)
	closedAt := *served.ClosedAt

	_, err = service.UpdateOrderStatus(order.ID, models.OrderStatusInProgress)
	assert.ErrorIs(t, err, ErrOrderClosed)

	// The closing timestamp and status are untouched
	reloaded, err := service.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusServed, reloaded.StatusID)
	require.NotNil(t, reloaded.ClosedAt)
	assert.Equal(t, closedAt, *reloaded.ClosedAt)
}

func TestUpdateOrderStatus_RejectsForeignDomains(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)

	order, err := service.CreateOrder(CreateOrderInput{
		TableID: 1,
		Items:   []CreateOrderItemInput{{MenuItemID: 1, Quantity: 1}},
	}, adminUserID(t, db))
	require.NoError(t, err)

	tests := []struct {
		name     string
		statusID uint
	}{
		{"item status code", models.ItemStatusReady},
		{"nonexistent code", 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.UpdateOrderStatus(order.ID, tt.statusID)
			assert.ErrorIs(t, err, ErrUnknownStatus)
		})
	}

	// The failed transitions left the order as it was
	reloaded, err := service.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusNew, reloaded.StatusID)
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)

	_, err := service.UpdateOrderStatus(42, models.OrderStatusInProgress)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateOrderItemStatus(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)

	order, err := service.CreateOrder(CreateOrderInput{
		TableID: 1,
		Items: []CreateOrderItemInput{
			{MenuItemID: 1, Quantity: 1},
			{MenuItemID: 2, Quantity: 1},
		},
	}, adminUserID(t, db))
	require.NoError(t, err)
	require.Len(t, order.OrderItems, 2)

	updated, err := service.UpdateOrderItemStatus(order.ID, order.OrderItems[0].ID, models.ItemStatusPreparing)
	require.NoError(t, err)

	assert.Equal(t, models.ItemStatusPreparing, updated.OrderItems[0].StatusID)
	assert.Equal(t, models.ItemStatusNew, updated.OrderItems[1].StatusID)

	// Item transitions never cascade to the order or the table
	assert.Equal(t, models.OrderStatusNew, updated.StatusID)
	var table models.Table
	require.NoError(t, db.First(&table, 1).Error)
	assert.Equal(t, models.TableStatusOccupied, table.StatusID)
}

func TestUpdateOrderItemStatus_RejectsForeignDomains(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)

	order, err := service.CreateOrder(CreateOrderInput{
		TableID: 1,
		Items:   []CreateOrderItemInput{{MenuItemID: 1, Quantity: 1}},
	}, adminUserID(t, db))
	require.NoError(t, err)

	_, err = service.UpdateOrderItemStatus(order.ID, order.OrderItems[0].ID, models.OrderStatusReady)
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestUpdateOrderItemStatus_ItemOfAnotherOrder(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)
	userID := adminUserID(t, db)

	first, err := service.CreateOrder(CreateOrderInput{
		TableID: 1,
		Items:   []CreateOrderItemInput{{MenuItemID: 1, Quantity: 1}},
	}, userID)
	require.NoError(t, err)

	second, err := service.CreateOrder(CreateOrderInput{
		TableID: 2,
		Items:   []CreateOrderItemInput{{MenuItemID: 2, Quantity: 1}},
	}, userID)
	require.NoError(t, err)

	// The item id exists, but it belongs to the first order
	_, err = service.UpdateOrderItemStatus(second.ID, first.OrderItems[0].ID, models.ItemStatusReady)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelOrder(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)

	order, err := service.CreateOrder(CreateOrderInput{
		TableID: 5,
		Items:   []CreateOrderItemInput{{MenuItemID: 1, Quantity: 1}},
	}, adminUserID(t, db))
	require.NoError(t, err)

	cancelled, err := service.CancelOrder(order.ID)
	require.NoError(t, err)
	assert.True(t, cancelled)

	reloaded, err := service.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, reloaded.StatusID)
	require.NotNil(t, reloaded.ClosedAt)

	var table models.Table
	require.NoError(t, db.First(&table, 5).Error)
	assert.Equal(t, models.TableStatusAvailable, table.StatusID)
	assert.Nil(t, table.CurrentOrderID)
}

func TestCancelOrder_AlreadyClosed(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)

	order, err := service.CreateOrder(CreateOrderInput{
		TableID: 1,
		Items:   []CreateOrderItemInput{{MenuItemID: 1, Quantity: 1}},
	}, adminUserID(t, db))
	require.NoError(t, err)

	_, err = service.UpdateOrderStatus(order.ID, models.OrderStatusServed)
	require.NoError(t, err)
	served, err := service.GetOrder(order.ID)
	require.NoError(t, err)
	closedAt := *served.ClosedAt

	// Cancelling a closed order is a no-op, not an error
	cancelled, err := service.CancelOrder(order.ID)
	require.NoError(t, err)
	assert.False(t, cancelled)

	reloaded, err := service.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusServed, reloaded.StatusID)
	assert.Equal(t, closedAt, *reloaded.ClosedAt)
}

func TestCancelOrder_NotFound(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)

	_, err := service.CancelOrder(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordPayment(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)

	order, err := service.CreateOrder(CreateOrderInput{
		TableID: 1,
		Items:   []CreateOrderItemInput{{MenuItemID: 1, Quantity: 1}},
	}, adminUserID(t, db))
	require.NoError(t, err)

	payment, err := service.RecordPayment(order.ID, 450, "card")
	require.NoError(t, err)
	assert.Equal(t, order.ID, payment.OrderID)
	assert.Equal(t, 450.0, payment.Amount)
	assert.Equal(t, "card", payment.PaymentMethod)
	assert.False(t, payment.PaidAt.IsZero())

	reloaded, err := service.GetOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Payments, 1)
}

func TestRecordPayment_OrderNotFound(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewOrderService(db)

	_, err := service.RecordPayment(42, 100, "cash")
	assert.ErrorIs(t, err, ErrNotFound)
}
