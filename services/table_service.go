package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/GiaSoPas/RestaurantManagementSystem/models"
)

// TableService owns the floor plan: table views, administrator-driven status
// edits and the move protocol that relocates an active order between tables.
type TableService struct {
	db *gorm.DB
}

// NewTableService creates a table service on top of the given database
func NewTableService(db *gorm.DB) *TableService {
	return &TableService{db: db}
}

// GetTableLayout returns every table ordered by table number, each with its
// status and fully rendered current order, plus the distinct list of
// locations for the floor plan view.
func (s *TableService) GetTableLayout() ([]models.Table, []string, error) {
	var tables []models.Table
	err := s.db.
		Preload("Status").
		Preload("CurrentOrder").
		Preload("CurrentOrder.Status").
		Preload("CurrentOrder.OrderItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id ASC")
		}).
		Preload("CurrentOrder.OrderItems.Status").
		Order("table_number ASC").
		Find(&tables).Error
	if err != nil {
		return nil, nil, err
	}

	var locations []string
	seen := make(map[string]bool)
	for _, table := range tables {
		if table.Location != "" && !seen[table.Location] {
			seen[table.Location] = true
			locations = append(locations, table.Location)
		}
	}
	return tables, locations, nil
}

// GetTable returns one table with its status and current order.
func (s *TableService) GetTable(tableID uint) (*models.Table, error) {
	var table models.Table
	err := s.db.
		Preload("Status").
		Preload("CurrentOrder").
		Preload("CurrentOrder.Status").
		Preload("CurrentOrder.OrderItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id ASC")
		}).
		Preload("CurrentOrder.OrderItems.Status").
		First(&table, tableID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: table %d", ErrNotFound, tableID)
		}
		return nil, err
	}
	return &table, nil
}

// GetTableHistory returns the orders placed on a table, newest first,
// optionally bounded by creation date.
func (s *TableService) GetTableHistory(tableID uint, startDate, endDate *time.Time) (*models.Table, []models.Order, error) {
	var table models.Table
	if err := s.db.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: table %d", ErrNotFound, tableID)
		}
		return nil, nil, err
	}

	query := s.db.
		Preload("Status").
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id ASC")
		}).
		Preload("OrderItems.Status").
		Where("table_id = ?", tableID)

	if startDate != nil {
		query = query.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("created_at <= ?", *endDate)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, nil, err
	}
	return &table, orders, nil
}

// UpdateTableStatus sets a table's status to any code in the table-status
// domain. This is an administrator operation: it does not touch the
// current-order reference, so the occupancy invariant is only maintained by
// order creation, closure and the move protocol.
func (s *TableService) UpdateTableStatus(tableID, statusID uint) (*models.Table, error) {
	var table models.Table
	if err := s.db.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: table %d", ErrNotFound, tableID)
		}
		return nil, err
	}

	if _, err := ResolveTableStatus(s.db, statusID); err != nil {
		return nil, err
	}

	if err := s.db.Model(&table).Update("status_id", statusID).Error; err != nil {
		return nil, err
	}
	return s.GetTable(tableID)
}

// MoveOrder relocates an order from a source table to a target table. The
// order's table reference, both current-order references and both table
// statuses change together in one transaction; both table rows are locked up
// front so concurrent moves against the same target serialize and the loser
// sees the table occupied.
func (s *TableService) MoveOrder(sourceTableID, orderID, targetTableID uint) (*models.Table, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Single locked query so the two rows are always claimed together.
		var tables []models.Table
		if err := lockForUpdate(tx).Where("id IN ?", []uint{sourceTableID, targetTableID}).Find(&tables).Error; err != nil {
			return err
		}
		tablesByID := make(map[uint]models.Table, len(tables))
		for _, table := range tables {
			tablesByID[table.ID] = table
		}

		source, ok := tablesByID[sourceTableID]
		if !ok {
			return fmt.Errorf("%w: table %d", ErrNotFound, sourceTableID)
		}
		if source.CurrentOrderID == nil || *source.CurrentOrderID != orderID {
			return fmt.Errorf("%w: order %d, table %d", ErrOrderNotOnTable, orderID, sourceTableID)
		}
		target, ok := tablesByID[targetTableID]
		if !ok {
			return fmt.Errorf("%w: table %d", ErrNotFound, targetTableID)
		}
		if target.CurrentOrderID != nil {
			return fmt.Errorf("%w: table %d", ErrTableOccupied, targetTableID)
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", orderID).
			Update("table_id", targetTableID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Table{}).Where("id = ?", sourceTableID).Updates(map[string]interface{}{
			"status_id":        models.TableStatusAvailable,
			"current_order_id": nil,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Table{}).Where("id = ?", targetTableID).Updates(map[string]interface{}{
			"status_id":        models.TableStatusOccupied,
			"current_order_id": orderID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetTable(targetTableID)
}

// GetTableStatuses returns all table status codes with their display colors.
func (s *TableService) GetTableStatuses() ([]models.TableStatus, error) {
	var statuses []models.TableStatus
	if err := s.db.Order("id ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}
