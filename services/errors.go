package services

import (
	"errors"
)

// Sentinel errors returned by the service layer. Controllers translate them
// to HTTP responses with errors.Is; services wrap them with entity details.
var (
	// ErrNotFound is returned when a referenced table, order, item or status
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnknownStatus is returned when a status code does not belong to the
	// domain the operation expects.
	ErrUnknownStatus = errors.New("unknown status")

	// ErrTableUnavailable is returned when an order is created against a
	// table that is not Available.
	ErrTableUnavailable = errors.New("table is not available")

	// ErrMenuItemUnavailable is returned when a requested menu item is
	// missing or marked unavailable. The check is all-or-nothing.
	ErrMenuItemUnavailable = errors.New("menu item is not available")

	// ErrOrderNotOnTable is returned by the move protocol when the order is
	// not the source table's current order.
	ErrOrderNotOnTable = errors.New("order is not on this table")

	// ErrTableOccupied is returned by the move protocol when the target
	// table already has a current order.
	ErrTableOccupied = errors.New("table is already occupied")

	// ErrOrderClosed is returned when transitioning an order that already
	// reached a terminal status. Closed orders keep their closing timestamp.
	ErrOrderClosed = errors.New("order is already closed")

	// ErrCategoryNotEmpty is returned when deleting a category that still
	// contains menu items.
	ErrCategoryNotEmpty = errors.New("category still contains menu items")
)
