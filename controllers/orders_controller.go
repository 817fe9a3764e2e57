package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GiaSoPas/RestaurantManagementSystem/config"
	"github.com/GiaSoPas/RestaurantManagementSystem/services"
)

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	TableID uint                     `json:"table_id" binding:"required"`
	Items   []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderItemRequest represents one requested line of a new order
type CreateOrderItemRequest struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	Note       string `json:"note"`
}

// RecordPaymentRequest represents the request body for recording a payment
type RecordPaymentRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" binding:"required,oneof=cash card online"`
}

// CreateOrder handles POST /api/v1/orders - opens a new order on a table
func CreateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
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

	input := services.CreateOrderInput{TableID: req.TableID}
	for _, item := range req.Items {
		input.Items = append(input.Items, services.CreateOrderItemInput{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Note:       item.Note,
		})
	}

	order, err := services.NewOrderService(config.GetDB()).CreateOrder(input, user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrder handles GET /api/v1/orders/:id - returns the full order view
func GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := services.NewOrderService(config.GetDB()).GetOrder(orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetActiveOrders handles GET /api/v1/orders/active - lists non-terminal orders
func GetActiveOrders(c *gin.Context) {
	orders, err := services.NewOrderService(config.GetDB()).GetActiveOrders()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status?statusId= -
// transitions an order within the order-status domain
func UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	statusID, err := strconv.ParseUint(c.Query("statusId"), 10, 32)
	if err != nil || statusID == 0 {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "statusId query parameter must be a positive integer")
		return
	}

	order, err := services.NewOrderService(config.GetDB()).UpdateOrderStatus(orderID, uint(statusID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderItemStatus handles PUT /api/v1/orders/:id/items/:itemId/status?statusId= -
// transitions a single line item within the item-status domain
func UpdateOrderItemStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	statusID, err := strconv.ParseUint(c.Query("statusId"), 10, 32)
	if err != nil || statusID == 0 {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "statusId query parameter must be a positive integer")
		return
	}

	order, err := services.NewOrderService(config.GetDB()).UpdateOrderItemStatus(orderID, itemID, uint(statusID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// CancelOrder handles DELETE /api/v1/orders/:id - cancels an open order.
// Cancelling an already closed order is reported as a failed precondition,
// not an internal error.
func CancelOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cancelled, err := services.NewOrderService(config.GetDB()).CancelOrder(orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !cancelled {
		respondError(c, http.StatusBadRequest, "ORDER_CLOSED", "Order is already closed and cannot be cancelled")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"cancelled": true},
	})
}

// RecordPayment handles POST /api/v1/orders/:id/payments - attaches a
// payment record to an order
func RecordPayment(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RecordPaymentRequest
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

	payment, err := services.NewOrderService(config.GetDB()).RecordPayment(orderID, req.Amount, req.PaymentMethod)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    payment,
	})
}
