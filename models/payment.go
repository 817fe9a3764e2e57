package models

import (
	"time"
)

// Payment records money taken against an order. Payments are recorded but
// never reconciled against the order total here.
type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       uint      `gorm:"not null;index" json:"order_id"`
	Amount        float64   `gorm:"not null" json:"amount"`
	PaymentMethod string    `gorm:"size:20;not null" json:"payment_method"` // cash, card, online
	PaidAt        time.Time `json:"paid_at"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
