// controllers/service.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"barbershop-backend/services"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Duration    int             `json:"duration" binding:"min=0"` // in minutes
	IsActive    *bool           `json:"isActive"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Duration    *int             `json:"duration"`
	IsActive    *bool            `json:"isActive"`
}

type SetActiveInput struct {
	IsActive bool `json:"isActive"`
}

type ServiceController struct {
	Catalog *services.CatalogService
}

// GetServices lists services; ?active=true hides deactivated ones.
func (sc *ServiceController) GetServices(c *gin.Context) {
	c.JSON(http.StatusOK, sc.Catalog.Services(c.Query("active") == "true"))
}

func (sc *ServiceController) GetService(c *gin.Context) {
	svc, err := sc.Catalog.Service(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (sc *ServiceController) CreateService(c *gin.Context) {
	var input CreateServiceInput
	if !bindJSON(c, &input) {
		return
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	svc, err := sc.Catalog.CreateService(services.ServiceDraft{
		Title:       input.Title,
		Description: input.Description,
		Duration:    input.Duration,
		Price:       input.Price,
		IsActive:    active,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (sc *ServiceController) UpdateService(c *gin.Context) {
	var input UpdateServiceInput
	if !bindJSON(c, &input) {
		return
	}
	existing, err := sc.Catalog.Service(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	draft := services.ServiceDraft{
		Title:       existing.Title,
		Description: existing.Description,
		Duration:    existing.Duration,
		Price:       existing.Price,
		IsActive:    existing.IsActive,
	}
	if input.Title != nil {
		draft.Title = *input.Title
	}
	if input.Description != nil {
		draft.Description = *input.Description
	}
	if input.Price != nil {
		draft.Price = *input.Price
	}
	if input.Duration != nil {
		draft.Duration = *input.Duration
	}
	if input.IsActive != nil {
		draft.IsActive = *input.IsActive
	}

	svc, err := sc.Catalog.UpdateService(existing.ID, draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// SetServiceActive activates or deactivates a service. Services are never
// deleted.
func (sc *ServiceController) SetServiceActive(c *gin.Context) {
	var input SetActiveInput
	if !bindJSON(c, &input) {
		return
	}
	svc, err := sc.Catalog.SetServiceActive(c.Param("id"), input.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}
