package models

// Category groups menu items (starters, soups, mains and so on)
type Category struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string     `json:"description,omitempty"`
	MenuItems   []MenuItem `gorm:"foreignKey:CategoryID" json:"-"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
