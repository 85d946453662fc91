// controllers/booking.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barbershop-backend/models"
	"barbershop-backend/services"
)

type CreateBookingInput struct {
	ServiceID   string               `json:"serviceId" binding:"required"`
	BarberID    string               `json:"barberId" binding:"required"`
	Date        models.Date          `json:"date"`
	Time        string               `json:"time" binding:"required"`
	ClientName  string               `json:"clientName" binding:"required"`
	ClientEmail string               `json:"clientEmail"`
	ClientPhone string               `json:"clientPhone"`
	Notes       string               `json:"notes"`
	Status      models.BookingStatus `json:"status"`
}

type UpdateBookingInput struct {
	ServiceID   *string      `json:"serviceId"`
	BarberID    *string      `json:"barberId"`
	Date        *models.Date `json:"date"`
	Time        *string      `json:"time"`
	ClientName  *string      `json:"clientName"`
	ClientEmail *string      `json:"clientEmail"`
	ClientPhone *string      `json:"clientPhone"`
	Notes       *string      `json:"notes"`
}

type UpdateBookingStatusInput struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

// BookingController serves the admin booking list, calendar and forms.
type BookingController struct {
	Bookings *services.BookingService
}

// GetBookings lists bookings, optionally inside ?period=&from=&to=.
func (bc *BookingController) GetBookings(c *gin.Context) {
	sel, err := parseSelection(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bc.Bookings.List(sel))
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	v, err := bc.Bookings.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// GetCalendar buckets the selected range by day.
func (bc *BookingController) GetCalendar(c *gin.Context) {
	sel, err := parseSelection(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if sel == nil {
		sel = &services.Selection{Period: services.PeriodThisMonth}
	}
	c.JSON(http.StatusOK, bc.Bookings.Calendar(sel))
}

// GetCalendarDay returns one day's bookings sorted by time.
func (bc *BookingController) GetCalendarDay(c *gin.Context) {
	d, err := parseDateParam(c, "date")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bc.Bookings.Day(d))
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	var input CreateBookingInput
	if !bindJSON(c, &input) {
		return
	}
	b, err := bc.Bookings.Create(services.BookingDraft{
		ServiceID:   input.ServiceID,
		BarberID:    input.BarberID,
		Date:        input.Date,
		Time:        input.Time,
		ClientName:  input.ClientName,
		ClientEmail: input.ClientEmail,
		ClientPhone: input.ClientPhone,
		Notes:       input.Notes,
		Status:      input.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (bc *BookingController) UpdateBooking(c *gin.Context) {
	var input UpdateBookingInput
	if !bindJSON(c, &input) {
		return
	}
	b, err := bc.Bookings.Update(c.Param("id"), services.BookingPatch{
		ServiceID:   input.ServiceID,
		BarberID:    input.BarberID,
		Date:        input.Date,
		Time:        input.Time,
		ClientName:  input.ClientName,
		ClientEmail: input.ClientEmail,
		ClientPhone: input.ClientPhone,
		Notes:       input.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BookingController) UpdateBookingStatus(c *gin.Context) {
	var input UpdateBookingStatusInput
	if !bindJSON(c, &input) {
		return
	}
	b, err := bc.Bookings.SetStatus(c.Param("id"), input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BookingController) DeleteBooking(c *gin.Context) {
	if err := bc.Bookings.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

// GetTimeSlots returns the bookable start times.
func (bc *BookingController) GetTimeSlots(c *gin.Context) {
	c.JSON(http.StatusOK, services.TimeSlots)
}
