// controllers/client.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barbershop-backend/services"
)

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	IsVIP bool   `json:"isVip"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
	IsVIP *bool   `json:"isVip"`
}

type ClientController struct {
	Catalog *services.CatalogService
}

func (cc *ClientController) GetClients(c *gin.Context) {
	c.JSON(http.StatusOK, cc.Catalog.Clients())
}

func (cc *ClientController) GetClient(c *gin.Context) {
	client, err := cc.Catalog.Client(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (cc *ClientController) CreateClient(c *gin.Context) {
	var input CreateClientInput
	if !bindJSON(c, &input) {
		return
	}
	client, err := cc.Catalog.CreateClient(services.ClientDraft{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
		IsVIP: input.IsVIP,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (cc *ClientController) UpdateClient(c *gin.Context) {
	var input UpdateClientInput
	if !bindJSON(c, &input) {
		return
	}
	existing, err := cc.Catalog.Client(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	draft := services.ClientDraft{Name: existing.Name, Email: existing.Email, Phone: existing.Phone, IsVIP: existing.IsVIP}
	if input.Name != nil {
		draft.Name = *input.Name
	}
	if input.Email != nil {
		draft.Email = *input.Email
	}
	if input.Phone != nil {
		draft.Phone = *input.Phone
	}
	if input.IsVIP != nil {
		draft.IsVIP = *input.IsVIP
	}

	client, err := cc.Catalog.UpdateClient(existing.ID, draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}
