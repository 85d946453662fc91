package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"barbershop-backend/config"
	"barbershop-backend/controllers"
	"barbershop-backend/services"
	"barbershop-backend/utils"
)

// Deps is everything the router hands to the controllers.
type Deps struct {
	Catalog   *services.CatalogService
	Bookings  *services.BookingService
	Orders    *services.OrderEngine
	Finance   *services.FinanceService
	Reminders *services.ReminderService
	Sessions  *services.WizardSessions
	Feed      *services.Feed

	AllowedOrigins []string
	SlowRequest    time.Duration
	// Auth is nil when the back office runs without login.
	Auth *config.AuthConfig
	JWT  config.JWTConfig
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger(d.SlowRequest))

	requireRole := func(roles ...string) gin.HandlerFunc {
		if d.Auth == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return utils.AuthMiddleware(d.JWT.Secret, roles...)
	}

	serviceController := &controllers.ServiceController{Catalog: d.Catalog}
	barberController := &controllers.BarberController{Catalog: d.Catalog}
	clientController := &controllers.ClientController{Catalog: d.Catalog}
	bookingController := &controllers.BookingController{Bookings: d.Bookings}
	intakeController := &controllers.IntakeController{Sessions: d.Sessions, Bookings: d.Bookings}
	orderController := &controllers.OrderController{Orders: d.Orders}
	transactionController := &controllers.TransactionController{Finance: d.Finance}
	reportController := &controllers.ReportController{Finance: d.Finance}
	dashboardController := &controllers.DashboardController{Catalog: d.Catalog, Bookings: d.Bookings, Orders: d.Orders, Finance: d.Finance}
	notificationController := &controllers.NotificationController{Feed: d.Feed}

	if d.Auth != nil {
		authController := &controllers.AuthController{Auth: *d.Auth, JWT: d.JWT}
		auth := r.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.GET("/me", requireRole(), authController.Me)
		}
	}

	api := r.Group("/api")

	// Public booking intake
	{
		api.GET("/time-slots", bookingController.GetTimeSlots)
		api.GET("/services", serviceController.GetServices)
		api.GET("/services/:id", serviceController.GetService)
		api.GET("/barbers", barberController.GetBarbers)
		api.GET("/barbers/:id", barberController.GetBarber)
		api.GET("/payment-methods", orderController.GetPaymentMethods)

		intake := api.Group("/intake")
		{
			intake.POST("", intakeController.OpenSession)
			intake.POST("/book", intakeController.Book)
			intake.GET("/:id", intakeController.GetSession)
			intake.PUT("/:id", intakeController.UpdateSession)
			intake.POST("/:id/next", intakeController.Next)
			intake.POST("/:id/back", intakeController.Back)
			intake.POST("/:id/submit", intakeController.Submit)
			intake.DELETE("/:id", intakeController.CloseSession)
		}
	}

	// Barber panel
	panel := api.Group("", requireRole(utils.RoleAdmin, utils.RoleBarber))
	{
		orders := panel.Group("/service-orders")
		{
			orders.GET("", orderController.GetOrders)
			orders.POST("", orderController.CreateOrder)
			orders.GET("/:id", orderController.GetOrder)
			orders.GET("/:id/timer", orderController.GetTimer)
			orders.POST("/:id/start", orderController.StartOrder)
			orders.POST("/:id/stop", orderController.StopOrder)
			orders.POST("/:id/cancel", orderController.CancelOrder)
		}
		panel.GET("/calendar", bookingController.GetCalendar)
		panel.GET("/calendar/:date", bookingController.GetCalendarDay)
		panel.GET("/notifications", notificationController.GetNotifications)
	}

	// Admin back office
	admin := api.Group("", requireRole(utils.RoleAdmin))
	{
		admin.POST("/services", serviceController.CreateService)
		admin.PUT("/services/:id", serviceController.UpdateService)
		admin.PATCH("/services/:id/active", serviceController.SetServiceActive)

		admin.POST("/barbers", barberController.CreateBarber)
		admin.PUT("/barbers/:id", barberController.UpdateBarber)
		admin.PATCH("/barbers/:id/active", barberController.SetBarberActive)

		clients := admin.Group("/clients")
		{
			clients.GET("", clientController.GetClients)
			clients.POST("", clientController.CreateClient)
			clients.GET("/:id", clientController.GetClient)
			clients.PUT("/:id", clientController.UpdateClient)
		}

		bookings := admin.Group("/bookings")
		{
			bookings.GET("", bookingController.GetBookings)
			bookings.POST("", bookingController.CreateBooking)
			bookings.GET("/:id", bookingController.GetBooking)
			bookings.PUT("/:id", bookingController.UpdateBooking)
			bookings.PATCH("/:id/status", bookingController.UpdateBookingStatus)
			bookings.DELETE("/:id", bookingController.DeleteBooking)
		}

		transactions := admin.Group("/transactions")
		{
			transactions.GET("", transactionController.GetTransactions)
			transactions.POST("", transactionController.CreateTransaction)
			transactions.DELETE("/:id", transactionController.DeleteTransaction)
		}

		admin.GET("/reports", reportController.GetReport)
		admin.GET("/dashboard", dashboardController.GetOverview)

		if d.Reminders != nil {
			reminderController := &controllers.ReminderController{Reminders: d.Reminders}
			reminders := admin.Group("/reminders")
			{
				reminders.GET("/logs", reminderController.GetLogs)
				reminders.POST("/run", reminderController.RunReminders)
				reminders.GET("/template", reminderController.GetTemplate)
				reminders.PUT("/template", reminderController.UpdateTemplate)
			}
		}
	}

	return r
}
