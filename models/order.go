package models

import (
	"time"
)

// Order represents a guest order placed against a table
type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	TableID    uint        `gorm:"not null;index" json:"table_id"` // mutable, orders can be moved between tables
	Table      *Table      `gorm:"foreignKey:TableID" json:"table,omitempty"`
	UserID     uint        `gorm:"not null;index" json:"user_id"` // waiter who opened the order, immutable
	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	StatusID   uint        `gorm:"not null;default:1" json:"status_id"` // defaults to New
	Status     Status      `gorm:"foreignKey:StatusID" json:"status"`
	TotalPrice float64     `gorm:"not null" json:"total_price"` // fixed at creation from captured item prices
	CreatedAt  time.Time   `json:"created_at"`
	ClosedAt   *time.Time  `json:"closed_at"` // set exactly once, on terminal transition
	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Payments   []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsTerminal reports whether the order has reached Served or Cancelled.
func (o *Order) IsTerminal() bool {
	return IsTerminalOrderStatus(o.StatusID)
}
