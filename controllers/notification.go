// controllers/notification.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"barbershop-backend/services"
)

type NotificationController struct {
	Feed *services.Feed
}

// GetNotifications returns the latest notifications, newest first.
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	c.JSON(http.StatusOK, nc.Feed.Recent(limit))
}
