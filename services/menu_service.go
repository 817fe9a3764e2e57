package services

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"gorm.io/gorm"

	"github.com/GiaSoPas/RestaurantManagementSystem/models"
)

// MenuService owns the menu catalog: categories, menu items and their
// photos. Order creation consumes the catalog read-only; prices are copied
// onto order items at creation time, so edits here never rewrite history.
type MenuService struct {
	db *gorm.DB
}

// NewMenuService creates a menu service on top of the given database
func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

// MenuItemInput carries the writable fields of a menu item
type MenuItemInput struct {
	Name               string
	Description        string
	Price              float64
	CategoryID         uint
	IsAvailable        bool
	PreparationMinutes int
}

// MenuItemFilter narrows down the menu item listing
type MenuItemFilter struct {
	CategoryIDs []uint
	Available   *bool
	Search      string
}

// GetCategories returns all categories ordered by name.
func (s *MenuService) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory adds a new menu category.
func (s *MenuService) CreateCategory(name, description string) (*models.Category, error) {
	category := models.Category{Name: name, Description: description}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames a category or changes its description.
func (s *MenuService) UpdateCategory(categoryID uint, name, description string) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, categoryID)
		}
		return nil, err
	}

	category.Name = name
	category.Description = description
	if err := s.db.Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category. Categories that still contain menu
// items cannot be deleted.
func (s *MenuService) DeleteCategory(categoryID uint) error {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category %d", ErrNotFound, categoryID)
		}
		return err
	}

	var itemCount int64
	if err := s.db.Model(&models.MenuItem{}).Where("category_id = ?", categoryID).Count(&itemCount).Error; err != nil {
		return err
	}
	if itemCount > 0 {
		return fmt.Errorf("%w: category %d", ErrCategoryNotEmpty, categoryID)
	}

	return s.db.Delete(&category).Error
}

// GetMenuItems lists menu items, optionally filtered by category,
// availability and a name/description search term.
func (s *MenuService) GetMenuItems(filter MenuItemFilter) ([]models.MenuItem, error) {
	query := s.db.Preload("Category")

	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if filter.Available != nil {
		query = query.Where("is_available = ?", *filter.Available)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var items []models.MenuItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	for i := range items {
		s.attachImageURL(&items[i])
	}
	return items, nil
}

// GetMenuItem returns one menu item with its category and a presigned photo
// URL when a photo exists.
func (s *MenuService) GetMenuItem(menuItemID uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.Preload("Category").First(&item, menuItemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu item %d", ErrNotFound, menuItemID)
		}
		return nil, err
	}

	s.attachImageURL(&item)
	return &item, nil
}

// CreateMenuItem adds a new dish, optionally with a photo.
func (s *MenuService) CreateMenuItem(input MenuItemInput, image *multipart.FileHeader) (*models.MenuItem, error) {
	if err := s.requireCategory(input.CategoryID); err != nil {
		return nil, err
	}

	item := models.MenuItem{
		Name:               input.Name,
		Description:        input.Description,
		Price:              input.Price,
		CategoryID:         input.CategoryID,
		IsAvailable:        input.IsAvailable,
		PreparationMinutes: input.PreparationMinutes,
	}

	if image != nil {
		if err := s.replaceImage(&item, image); err != nil {
			return nil, err
		}
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return s.GetMenuItem(item.ID)
}

// UpdateMenuItem rewrites a menu item's fields, replacing the photo when a
// new one is provided.
func (s *MenuService) UpdateMenuItem(menuItemID uint, input MenuItemInput, image *multipart.FileHeader) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.First(&item, menuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu item %d", ErrNotFound, menuItemID)
		}
		return nil, err
	}

	if err := s.requireCategory(input.CategoryID); err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Description = input.Description
	item.Price = input.Price
	item.CategoryID = input.CategoryID
	item.IsAvailable = input.IsAvailable
	item.PreparationMinutes = input.PreparationMinutes

	if image != nil {
		if err := s.replaceImage(&item, image); err != nil {
			return nil, err
		}
	}

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return s.GetMenuItem(menuItemID)
}

// UpdateMenuItemImage replaces just the photo of a menu item.
func (s *MenuService) UpdateMenuItemImage(menuItemID uint, image *multipart.FileHeader) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.First(&item, menuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu item %d", ErrNotFound, menuItemID)
		}
		return nil, err
	}

	if err := s.replaceImage(&item, image); err != nil {
		return nil, err
	}

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return s.GetMenuItem(menuItemID)
}

// DeleteMenuItem removes a dish from the catalog along with its photo.
// Historical order items keep the captured name and price.
func (s *MenuService) DeleteMenuItem(menuItemID uint) error {
	var item models.MenuItem
	if err := s.db.First(&item, menuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: menu item %d", ErrNotFound, menuItemID)
		}
		return err
	}

	if item.ImageS3Key != nil {
		if imageService := GetImageService(); imageService != nil {
			if err := imageService.DeleteImage(*item.ImageS3Key); err != nil {
				log.Printf("warning: failed to delete image %s: %v", *item.ImageS3Key, err)
			}
		}
	}

	return s.db.Delete(&item).Error
}

func (s *MenuService) requireCategory(categoryID uint) error {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: category %d", ErrNotFound, categoryID)
	}
	return nil
}

func (s *MenuService) replaceImage(item *models.MenuItem, image *multipart.FileHeader) error {
	imageService := GetImageService()
	if imageService == nil {
		return fmt.Errorf("image storage is not configured")
	}

	imageKey, err := imageService.UploadImage(image)
	if err != nil {
		return err
	}

	if item.ImageS3Key != nil {
		if err := imageService.DeleteImage(*item.ImageS3Key); err != nil {
			log.Printf("warning: failed to delete old image %s: %v", *item.ImageS3Key, err)
		}
	}

	item.ImageS3Key = &imageKey
	return nil
}

func (s *MenuService) attachImageURL(item *models.MenuItem) {
	if item.ImageS3Key == nil {
		return
	}
	imageService := GetImageService()
	if imageService == nil {
		return
	}
	url, err := imageService.GetImageURL(*item.ImageS3Key)
	if err != nil {
		log.Printf("warning: failed to generate image URL for menu item %d: %v", item.ID, err)
		return
	}
	if url != "" {
		item.ImageURL = &url
	}
}
