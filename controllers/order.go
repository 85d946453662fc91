// controllers/order.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barbershop-backend/models"
	"barbershop-backend/services"
)

type CreateOrderInput struct {
	BookingID string `json:"bookingId" binding:"required"`
}

type StopOrderInput struct {
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
}

// OrderController is the barber panel: service orders and their timers.
type OrderController struct {
	Orders *services.OrderEngine
}

// GetOrders lists orders filtered by ?status=&barberId=&period=.
func (oc *OrderController) GetOrders(c *gin.Context) {
	sel, err := parseSelection(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, oc.Orders.List(services.OrderFilter{
		Status:   models.OrderStatus(c.Query("status")),
		BarberID: c.Query("barberId"),
		Range:    sel,
	}))
}

func (oc *OrderController) GetOrder(c *gin.Context) {
	v, err := oc.Orders.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input CreateOrderInput
	if !bindJSON(c, &input) {
		return
	}
	o, err := oc.Orders.CreateFromBooking(input.BookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (oc *OrderController) StartOrder(c *gin.Context) {
	o, err := oc.Orders.Start(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// StopOrder completes the order and returns it with its income entry.
func (oc *OrderController) StopOrder(c *gin.Context) {
	var input StopOrderInput
	if !bindJSON(c, &input) {
		return
	}
	done, err := oc.Orders.Stop(c.Param("id"), input.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, done)
}

func (oc *OrderController) CancelOrder(c *gin.Context) {
	o, err := oc.Orders.Cancel(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// GetTimer returns the live counter of a running order.
func (oc *OrderController) GetTimer(c *gin.Context) {
	secs, running := oc.Orders.Elapsed(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"running":        running,
		"elapsedSeconds": secs,
		"display":        services.FormatElapsed(secs),
	})
}

func (oc *OrderController) GetPaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, models.PaymentMethods)
}
