// controllers/errors.go
package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"barbershop-backend/models"
	"barbershop-backend/services"
	"barbershop-backend/utils"
)

// respondError maps a service error onto an HTTP status.
func respondError(c *gin.Context, err error) {
	var verrs services.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		utils.RespondWithDetails(c, http.StatusBadRequest, "Validation failed", verrs)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAlreadyExists), errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrStepIncomplete), errors.Is(err, services.ErrFirstStep), errors.Is(err, services.ErrLastStep):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("controllers: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// parseSelection reads the date-range picker from ?period=&from=&to=. A
// request without period selects everything.
func parseSelection(c *gin.Context) (*services.Selection, error) {
	token := c.Query("period")
	if token == "" {
		return nil, nil
	}
	period, err := services.ParsePeriod(token)
	if err != nil {
		return nil, err
	}
	sel := &services.Selection{Period: period}
	if sel.From, err = utils.ParseOptionalDate(c.Query("from")); err != nil {
		return nil, services.ValidationErrors{{Field: "from", Message: err.Error()}}
	}
	if sel.To, err = utils.ParseOptionalDate(c.Query("to")); err != nil {
		return nil, services.ValidationErrors{{Field: "to", Message: err.Error()}}
	}
	return sel, nil
}

func parseDateParam(c *gin.Context, key string) (models.Date, error) {
	d, err := models.ParseDate(c.Param(key))
	if err != nil {
		return d, services.ValidationErrors{{Field: key, Message: err.Error()}}
	}
	return d, nil
}

func bindJSON(c *gin.Context, input interface{}) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return false
	}
	return true
}
