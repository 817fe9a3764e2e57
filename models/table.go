package models

import (
	"time"
)

// Table represents a dining table in the restaurant
type Table struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	TableNumber    int         `gorm:"not null;uniqueIndex" json:"table_number"`
	Capacity       int         `gorm:"not null;check:capacity > 0" json:"capacity"`
	StatusID       uint        `gorm:"not null;default:1" json:"status_id"` // defaults to Available
	Status         TableStatus `gorm:"foreignKey:StatusID" json:"status"`
	CurrentOrderID *uint       `gorm:"index" json:"current_order_id"` // set iff the table is occupied
	CurrentOrder   *Order      `gorm:"foreignKey:CurrentOrderID;constraint:-" json:"current_order,omitempty"` // no FK, cyclic with orders.table_id
	Location       string      `json:"location,omitempty"`
	Description    string      `json:"description,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Table model
func (Table) TableName() string {
	return "tables"
}
