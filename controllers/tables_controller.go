package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GiaSoPas/RestaurantManagementSystem/config"
	"github.com/GiaSoPas/RestaurantManagementSystem/services"
)

// UpdateTableStatusRequest represents the request body for setting a table status
type UpdateTableStatusRequest struct {
	StatusID uint `json:"status_id" binding:"required"`
}

// MoveOrderRequest represents the request body for moving an order to
// another table
type MoveOrderRequest struct {
	NewTableID uint `json:"new_table_id" binding:"required"`
}

// GetTableLayout handles GET /api/v1/tables/layout - returns the floor plan
func GetTableLayout(c *gin.Context) {
	tables, locations, err := services.NewTableService(config.GetDB()).GetTableLayout()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"tables":    tables,
			"locations": locations,
		},
	})
}

// GetTable handles GET /api/v1/tables/:id - returns one table with its
// current order
func GetTable(c *gin.Context) {
	tableID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	table, err := services.NewTableService(config.GetDB()).GetTable(tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    table,
	})
}

// GetTableHistory handles GET /api/v1/tables/:id/history - lists the orders
// placed on a table, optionally bounded by startDate/endDate
func GetTableHistory(c *gin.Context) {
	tableID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	startDate, ok := parseDateQuery(c, "startDate")
	if !ok {
		return
	}
	endDate, ok := parseDateQuery(c, "endDate")
	if !ok {
		return
	}

	table, orders, err := services.NewTableService(config.GetDB()).GetTableHistory(tableID, startDate, endDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":           table.ID,
			"table_number": table.TableNumber,
			"orders":       orders,
		},
	})
}

// UpdateTableStatus handles PUT /api/v1/tables/:id/status - administrator
// edit of a table's status
func UpdateTableStatus(c *gin.Context) {
	tableID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTableStatusRequest
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

	table, err := services.NewTableService(config.GetDB()).UpdateTableStatus(tableID, req.StatusID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    table,
	})
}

// MoveOrder handles POST /api/v1/tables/:id/orders/:orderId/move - moves an
// active order to another table
func MoveOrder(c *gin.Context) {
	tableID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}

	var req MoveOrderRequest
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

	table, err := services.NewTableService(config.GetDB()).MoveOrder(tableID, orderID, req.NewTableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    table,
	})
}

// GetTableStatuses handles GET /api/v1/tables/statuses - lists table status
// codes with display colors
func GetTableStatuses(c *gin.Context) {
	statuses, err := services.NewTableService(config.GetDB()).GetTableStatuses()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    statuses,
	})
}

// parseDateQuery reads an optional RFC 3339 or YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, true
	}

	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", name+" must be an RFC 3339 timestamp or YYYY-MM-DD date")
	return nil, false
}
