// controllers/reminder.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barbershop-backend/services"
)

// UpdateReminderTemplateInput defines the expected JSON structure. The
// message may use [ClientName], [Service], [Barber], [Date] and [Time].
type UpdateReminderTemplateInput struct {
	Message string `json:"message" binding:"required"`
}

type ReminderController struct {
	Reminders *services.ReminderService
}

func (rc *ReminderController) GetLogs(c *gin.Context) {
	c.JSON(http.StatusOK, rc.Reminders.Logs())
}

// RunReminders sends tomorrow's reminders now instead of waiting for the
// scheduled run.
func (rc *ReminderController) RunReminders(c *gin.Context) {
	sent, failed := rc.Reminders.SendDailyReminders()
	c.JSON(http.StatusOK, gin.H{"sent": sent, "failed": failed})
}

func (rc *ReminderController) GetTemplate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": rc.Reminders.Template()})
}

func (rc *ReminderController) UpdateTemplate(c *gin.Context) {
	var input UpdateReminderTemplateInput
	if !bindJSON(c, &input) {
		return
	}
	rc.Reminders.SetTemplate(input.Message)
	c.JSON(http.StatusOK, gin.H{"message": rc.Reminders.Template()})
}
