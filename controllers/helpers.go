package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GiaSoPas/RestaurantManagementSystem/config"
	"github.com/GiaSoPas/RestaurantManagementSystem/middleware"
	"github.com/GiaSoPas/RestaurantManagementSystem/models"
	"github.com/GiaSoPas/RestaurantManagementSystem/services"
	"github.com/GiaSoPas/RestaurantManagementSystem/utils"
)

// respondServiceError maps service-layer errors to HTTP responses. Missing
// entities are 404; violated preconditions and wrong-domain status codes are
// 400; anything else is a 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, services.ErrUnknownStatus):
		respondError(c, http.StatusBadRequest, "UNKNOWN_STATUS", err.Error())
	case errors.Is(err, services.ErrTableUnavailable):
		respondError(c, http.StatusBadRequest, "TABLE_UNAVAILABLE", err.Error())
	case errors.Is(err, services.ErrMenuItemUnavailable):
		respondError(c, http.StatusBadRequest, "MENU_ITEM_UNAVAILABLE", err.Error())
	case errors.Is(err, services.ErrOrderNotOnTable):
		respondError(c, http.StatusBadRequest, "ORDER_NOT_ON_TABLE", err.Error())
	case errors.Is(err, services.ErrTableOccupied):
		respondError(c, http.StatusBadRequest, "TABLE_OCCUPIED", err.Error())
	case errors.Is(err, services.ErrOrderClosed):
		respondError(c, http.StatusBadRequest, "ORDER_CLOSED", err.Error())
	case errors.Is(err, services.ErrCategoryNotEmpty):
		respondError(c, http.StatusBadRequest, "CATEGORY_NOT_EMPTY", err.Error())
	default:
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			respondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Operation failed")
	}
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// currentUser resolves the acting staff member. With Auth0 configured the
// authenticated subject maps to a users row; without it (local development,
// matching the reference deployment) the configured dev account is used.
func currentUser(c *gin.Context) (*models.User, bool) {
	db := config.GetDB()

	if auth0ID, err := middleware.GetUserID(c); err == nil {
		var user models.User
		if err := db.Preload("Role").Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
			respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "No staff account is linked to this login")
			return nil, false
		}
		return &user, true
	}

	username := "admin"
	if cfg := config.GetConfig(); cfg != nil && cfg.DevUsername != "" {
		username = cfg.DevUsername
	}

	var user models.User
	if err := db.Preload("Role").Where("username = ?", username).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not resolve the acting user")
		return nil, false
	}
	return &user, true
}
