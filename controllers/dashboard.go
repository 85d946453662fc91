// controllers/dashboard.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"barbershop-backend/models"
	"barbershop-backend/services"
)

type DashboardOverview struct {
	TotalClients    int                    `json:"totalClients"`
	TodayBookings   []services.BookingView `json:"todayBookings"`
	PendingBookings int                    `json:"pendingBookings"`
	RunningOrders   []services.OrderView   `json:"runningOrders"`
	WaitingOrders   int                    `json:"waitingOrders"`
	TodayIncome     decimal.Decimal        `json:"todayIncome"`
	MonthlyIncome   decimal.Decimal        `json:"monthlyIncome"`
	MonthGrowth     float64                `json:"monthGrowth"`
}

type DashboardController struct {
	Catalog  *services.CatalogService
	Bookings *services.BookingService
	Orders   *services.OrderEngine
	Finance  *services.FinanceService
}

func (dc *DashboardController) GetOverview(c *gin.Context) {
	today, err := dc.Finance.Report(services.Selection{Period: services.PeriodToday})
	if err != nil {
		respondError(c, err)
		return
	}
	month, err := dc.Finance.Report(services.Selection{Period: services.PeriodThisMonth})
	if err != nil {
		respondError(c, err)
		return
	}

	overview := DashboardOverview{
		TotalClients:  len(dc.Catalog.Clients()),
		TodayBookings: dc.Bookings.List(&services.Selection{Period: services.PeriodToday}),
		RunningOrders: dc.Orders.List(services.OrderFilter{Status: models.OrderInProgress}),
		WaitingOrders: len(dc.Orders.List(services.OrderFilter{Status: models.OrderWaiting})),
		TodayIncome:   today.Income,
		MonthlyIncome: month.Income,
		MonthGrowth:   month.IncomeGrowth,
	}
	for _, b := range dc.Bookings.List(nil) {
		if b.Status == models.BookingPending {
			overview.PendingBookings++
		}
	}

	c.JSON(http.StatusOK, overview)
}
