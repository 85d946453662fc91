package models

import (
	"time"
)

// ReminderLog records one outbound reminder for a booking.
type ReminderLog struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	BookingID    string    `gorm:"index;not null" json:"bookingId"`
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"errorMessage,omitempty"`
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms
	SentAt       time.Time `json:"sentAt"`
}
