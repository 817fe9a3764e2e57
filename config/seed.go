package config

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/GiaSoPas/RestaurantManagementSystem/models"
)

// Seed populates reference data on an empty database: roles, the three
// status domains, the floor plan, menu categories and items, and the admin
// account. Each block is skipped when rows already exist, so Seed is safe to
// run on every startup.
func Seed(db *gorm.DB) error {
	if err := seedRoles(db); err != nil {
		return err
	}
	if err := seedStatuses(db); err != nil {
		return err
	}
	if err := seedTableStatuses(db); err != nil {
		return err
	}
	if err := seedTables(db); err != nil {
		return err
	}
	if err := seedMenu(db); err != nil {
		return err
	}
	return seedUsers(db)
}

func seedRoles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Role{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count roles: %w", err)
	}
	if count > 0 {
		return nil
	}

	roles := []models.Role{
		{ID: models.RoleAdmin, Name: "admin"},
		{ID: models.RoleWaiter, Name: "waiter"},
		{ID: models.RoleCook, Name: "cook"},
	}
	if err := db.Create(&roles).Error; err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	return nil
}

func seedStatuses(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Status{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count statuses: %w", err)
	}
	if count > 0 {
		return nil
	}

	statuses := []models.Status{
		{ID: models.OrderStatusNew, Name: "New", Type: models.StatusTypeOrder},
		{ID: models.OrderStatusInProgress, Name: "In progress", Type: models.StatusTypeOrder},
		{ID: models.OrderStatusPreparing, Name: "Preparing", Type: models.StatusTypeOrder},
		{ID: models.OrderStatusReady, Name: "Ready", Type: models.StatusTypeOrder},
		{ID: models.OrderStatusServed, Name: "Served", Type: models.StatusTypeOrder},
		{ID: models.OrderStatusCancelled, Name: "Cancelled", Type: models.StatusTypeOrder},

		{ID: models.ItemStatusNew, Name: "New", Type: models.StatusTypeItem},
		{ID: models.ItemStatusPreparing, Name: "Preparing", Type: models.StatusTypeItem},
		{ID: models.ItemStatusReady, Name: "Ready", Type: models.StatusTypeItem},
		{ID: models.ItemStatusServed, Name: "Served", Type: models.StatusTypeItem},
		{ID: models.ItemStatusCancelled, Name: "Cancelled", Type: models.StatusTypeItem},
	}
	if err := db.Create(&statuses).Error; err != nil {
		return fmt.Errorf("failed to seed statuses: %w", err)
	}
	return nil
}

func seedTableStatuses(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.TableStatus{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count table statuses: %w", err)
	}
	if count > 0 {
		return nil
	}

	statuses := []models.TableStatus{
		{ID: models.TableStatusAvailable, Name: "Available", Color: "#4CAF50", Description: "Table is free and ready for guests"},
		{ID: models.TableStatusOccupied, Name: "Occupied", Color: "#FF9800", Description: "Table has an active order"},
		{ID: models.TableStatusAwaitingPayment, Name: "Awaiting payment", Color: "#F44336", Description: "Order is finished, waiting for payment"},
		{ID: models.TableStatusReserved, Name: "Reserved", Color: "#2196F3", Description: "Table is reserved for a specific time"},
		{ID: models.TableStatusUnavailable, Name: "Unavailable", Color: "#9E9E9E", Description: "Table is temporarily out of service"},
	}
	if err := db.Create(&statuses).Error; err != nil {
		return fmt.Errorf("failed to seed table statuses: %w", err)
	}
	return nil
}

func seedTables(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Table{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count tables: %w", err)
	}
	if count > 0 {
		return nil
	}

	tables := []models.Table{
		{TableNumber: 1, Capacity: 2, StatusID: models.TableStatusAvailable, Location: "Main hall"},
		{TableNumber: 2, Capacity: 2, StatusID: models.TableStatusAvailable, Location: "Main hall"},
		{TableNumber: 3, Capacity: 4, StatusID: models.TableStatusAvailable, Location: "Main hall"},
		{TableNumber: 4, Capacity: 4, StatusID: models.TableStatusAvailable, Location: "Terrace"},
		{TableNumber: 5, Capacity: 6, StatusID: models.TableStatusAvailable, Location: "Terrace"},
	}
	if err := db.Create(&tables).Error; err != nil {
		return fmt.Errorf("failed to seed tables: %w", err)
	}
	return nil
}

func seedMenu(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Starters", Description: "Cold and hot starters"},
		{Name: "Soups", Description: "First courses"},
		{Name: "Mains", Description: "Main courses"},
		{Name: "Desserts", Description: "Sweet courses"},
		{Name: "Drinks", Description: "Hot and cold drinks"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	menuItems := []models.MenuItem{
		{
			Name:               "Caesar salad",
			Description:        "Classic salad with grilled chicken, lettuce, croutons and Caesar dressing",
			Price:              450,
			CategoryID:         categories[0].ID,
			IsAvailable:        true,
			PreparationMinutes: 15,
		},
		{
			Name:               "Borscht",
			Description:        "Traditional beet soup served with sour cream",
			Price:              350,
			CategoryID:         categories[1].ID,
			IsAvailable:        true,
			PreparationMinutes: 30,
		},
		{
			Name:               "Ribeye steak",
			Description:        "Marbled beef steak with grilled vegetables",
			Price:              1200,
			CategoryID:         categories[2].ID,
			IsAvailable:        true,
			PreparationMinutes: 25,
		},
		{
			Name:               "Tiramisu",
			Description:        "Classic Italian dessert with coffee and mascarpone",
			Price:              350,
			CategoryID:         categories[3].ID,
			IsAvailable:        true,
			PreparationMinutes: 10,
		},
		{
			Name:               "Latte",
			Description:        "Espresso with steamed milk",
			Price:              250,
			CategoryID:         categories[4].ID,
			IsAvailable:        true,
			PreparationMinutes: 5,
		},
	}
	if err := db.Create(&menuItems).Error; err != nil {
		return fmt.Errorf("failed to seed menu items: %w", err)
	}
	return nil
}

func seedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	user := models.User{Username: "admin", RoleID: models.RoleAdmin}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	log.Println("Seeded default admin user")
	return nil
}
