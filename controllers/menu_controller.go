package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GiaSoPas/RestaurantManagementSystem/config"
	"github.com/GiaSoPas/RestaurantManagementSystem/services"
)

// CategoryRequest represents the request body for creating or updating a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// MenuItemForm represents the multipart form for creating or updating a menu
// item. The photo travels in the "image" file field.
type MenuItemForm struct {
	Name               string  `form:"name" binding:"required"`
	Description        string  `form:"description"`
	Price              float64 `form:"price" binding:"required,gt=0"`
	CategoryID         uint    `form:"category_id" binding:"required"`
	PreparationMinutes int     `form:"preparation_minutes"`
	Available          *bool   `form:"available"`
}

func (f *MenuItemForm) toInput() services.MenuItemInput {
	available := true
	if f.Available != nil {
		available = *f.Available
	}
	return services.MenuItemInput{
		Name:               f.Name,
		Description:        f.Description,
		Price:              f.Price,
		CategoryID:         f.CategoryID,
		IsAvailable:        available,
		PreparationMinutes: f.PreparationMinutes,
	}
}

// GetCategories handles GET /api/v1/menu/categories
func GetCategories(c *gin.Context) {
	categories, err := services.NewMenuService(config.GetDB()).GetCategories()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
	})
}

// CreateCategory handles POST /api/v1/menu/categories
func CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	category, err := services.NewMenuService(config.GetDB()).CreateCategory(req.Name, req.Description)
	if err != nil {
		// Check for duplicate name (works with both PostgreSQL and SQLite)
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			respondError(c, http.StatusConflict, "CATEGORY_EXISTS", "A category with this name already exists")
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
	})
}

// UpdateCategory handles PUT /api/v1/menu/categories/:id
func UpdateCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	category, err := services.NewMenuService(config.GetDB()).UpdateCategory(categoryID, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    category,
	})
}

// DeleteCategory handles DELETE /api/v1/menu/categories/:id
func DeleteCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.NewMenuService(config.GetDB()).DeleteCategory(categoryID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// GetMenuItems handles GET /api/v1/menu/items with optional categoryIds,
// available and search filters
func GetMenuItems(c *gin.Context) {
	filter := services.MenuItemFilter{Search: c.Query("search")}

	for _, raw := range c.QueryArray("categoryIds") {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "categoryIds must be positive integers")
			return
		}
		filter.CategoryIDs = append(filter.CategoryIDs, uint(id))
	}

	if raw := c.Query("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "available must be true or false")
			return
		}
		filter.Available = &available
	}

	items, err := services.NewMenuService(config.GetDB()).GetMenuItems(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// GetMenuItem handles GET /api/v1/menu/items/:id
func GetMenuItem(c *gin.Context) {
	menuItemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := services.NewMenuService(config.GetDB()).GetMenuItem(menuItemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// CreateMenuItem handles POST /api/v1/menu/items (multipart form)
func CreateMenuItem(c *gin.Context) {
	var form MenuItemForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	// Photo is optional on creation
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	item, err := services.NewMenuService(config.GetDB()).CreateMenuItem(form.toInput(), image)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    item,
	})
}

// UpdateMenuItem handles PUT /api/v1/menu/items/:id (multipart form)
func UpdateMenuItem(c *gin.Context) {
	menuItemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var form MenuItemForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	item, err := services.NewMenuService(config.GetDB()).UpdateMenuItem(menuItemID, form.toInput(), image)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// UpdateMenuItemImage handles PUT /api/v1/menu/items/:id/image - replaces
// only the photo
func UpdateMenuItemImage(c *gin.Context) {
	menuItemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "An image file is required")
		return
	}

	item, err := services.NewMenuService(config.GetDB()).UpdateMenuItemImage(menuItemID, image)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// DeleteMenuItem handles DELETE /api/v1/menu/items/:id
func DeleteMenuItem(c *gin.Context) {
	menuItemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.NewMenuService(config.GetDB()).DeleteMenuItem(menuItemID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
