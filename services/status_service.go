package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GiaSoPas/RestaurantManagementSystem/models"
)

// ResolveStatus looks up a status code within one of the disjoint status
// domains (order_status or item_status). A code that exists but belongs to a
// different domain fails exactly like a code that does not exist.
func ResolveStatus(db *gorm.DB, statusType string, statusID uint) (*models.Status, error) {
	var status models.Status
	err := db.Where("id = ? AND type = ?", statusID, statusType).First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d is not a valid %s", ErrUnknownStatus, statusID, statusType)
		}
		return nil, err
	}
	return &status, nil
}

// ResolveTableStatus looks up a table status code. Table statuses live in
// their own table, so an order or item status id can never match here.
func ResolveTableStatus(db *gorm.DB, statusID uint) (*models.TableStatus, error) {
	var status models.TableStatus
	err := db.First(&status, statusID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: table status %d", ErrNotFound, statusID)
		}
		return nil, err
	}
	return &status, nil
}

// lockForUpdate adds a row-level write lock to the query on databases that
// support it. SQLite (used by the test suite) rejects FOR UPDATE syntax and
// serializes writers on the database lock instead.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
