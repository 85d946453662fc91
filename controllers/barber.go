// controllers/barber.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barbershop-backend/services"
)

type BarberInput struct {
	Name           string  `json:"name" binding:"required"`
	Specialization string  `json:"specialization"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Rating         float64 `json:"rating"`
	Commission     float64 `json:"commissionPercent"`
	IsActive       *bool   `json:"isActive"`
}

func (in BarberInput) draft() services.BarberDraft {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return services.BarberDraft{
		Name:           in.Name,
		Specialization: in.Specialization,
		Email:          in.Email,
		Phone:          in.Phone,
		Rating:         in.Rating,
		Commission:     in.Commission,
		IsActive:       active,
	}
}

type BarberController struct {
	Catalog *services.CatalogService
}

func (bc *BarberController) GetBarbers(c *gin.Context) {
	c.JSON(http.StatusOK, bc.Catalog.Barbers(c.Query("active") == "true"))
}

func (bc *BarberController) GetBarber(c *gin.Context) {
	b, err := bc.Catalog.Barber(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BarberController) CreateBarber(c *gin.Context) {
	var input BarberInput
	if !bindJSON(c, &input) {
		return
	}
	b, err := bc.Catalog.CreateBarber(input.draft())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// UpdateBarber replaces the barber's profile.
func (bc *BarberController) UpdateBarber(c *gin.Context) {
	var input BarberInput
	if !bindJSON(c, &input) {
		return
	}
	b, err := bc.Catalog.UpdateBarber(c.Param("id"), input.draft())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BarberController) SetBarberActive(c *gin.Context) {
	var input SetActiveInput
	if !bindJSON(c, &input) {
		return
	}
	b, err := bc.Catalog.SetBarberActive(c.Param("id"), input.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
