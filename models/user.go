package models

import (
	"time"
)

// Seeded role ids.
const (
	RoleAdmin uint = iota + 1
	RoleWaiter
	RoleCook
)

// Role represents a staff role
type Role struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Users []User `gorm:"foreignKey:RoleID" json:"-"`
}

// TableName specifies the table name for the Role model
func (Role) TableName() string {
	return "roles"
}

// User represents a staff member who can open and work orders
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Auth0ID   *string   `gorm:"uniqueIndex" json:"auth0_id,omitempty"` // Auth0 'sub' claim, nullable for seeded accounts
	RoleID    uint      `gorm:"not null" json:"role_id"`
	Role      Role      `gorm:"foreignKey:RoleID" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
