// controllers/report.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barbershop-backend/services"
)

// ReportController handles all reporting functions
type ReportController struct {
	Finance *services.FinanceService
}

// GetReport returns the financial summary of ?period= (this_month when
// absent).
func (rc *ReportController) GetReport(c *gin.Context) {
	sel, err := parseSelection(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if sel == nil {
		sel = &services.Selection{Period: services.PeriodThisMonth}
	}
	rep, err := rc.Finance.Report(*sel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}
