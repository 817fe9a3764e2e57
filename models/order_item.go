package models

import (
	"time"
)

// OrderItem represents a single line of an order. Menu item name and price
// are captured at creation time so later catalog edits never change
// historical orders.
type OrderItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OrderID      uint      `gorm:"not null;index" json:"order_id"`
	MenuItemID   uint      `gorm:"not null;index" json:"menu_item_id"`
	MenuItem     *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	MenuItemName string    `gorm:"size:100;not null" json:"menu_item_name"`
	Price        float64   `gorm:"not null" json:"price"`
	Quantity     int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	Note         string    `json:"note,omitempty"`
	StatusID     uint      `gorm:"not null;default:7" json:"status_id"` // defaults to item-status New
	Status       Status    `gorm:"foreignKey:StatusID" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns the captured line price times quantity.
func (oi *OrderItem) Subtotal() float64 {
	return oi.Price * float64(oi.Quantity)
}
