package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetMyProfile handles GET /api/v1/users/me - returns the acting staff
// member and their role
func GetMyProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
