package models

import (
	"time"
)

// MenuItem represents a dish or drink on the menu
type MenuItem struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"size:100;not null" json:"name"`
	Description        string    `json:"description,omitempty"`
	Price              float64   `gorm:"not null" json:"price"`
	CategoryID         uint      `gorm:"not null;index" json:"category_id"`
	Category           *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	IsAvailable        bool      `gorm:"not null;default:true" json:"is_available"`
	PreparationMinutes int       `json:"preparation_minutes,omitempty"`
	ImageS3Key         *string   `json:"image_s3_key,omitempty"`       // nullable, S3 key for the dish photo
	ImageURL           *string   `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL for the photo
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName specifies the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}
