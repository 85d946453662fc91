package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingDone      BookingStatus = "done"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingDone, BookingCancelled:
		return true
	}
	return false
}

// Booking is a scheduled appointment. The client fields are a snapshot taken
// when the booking was made and TotalAmount is the service price at that moment.
type Booking struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	ServiceID   string          `gorm:"index;not null" json:"serviceId"`
	BarberID    string          `gorm:"index;not null" json:"barberId"`
	Date        Date            `gorm:"type:date;index;not null" json:"date"`
	Time        string          `gorm:"type:varchar(5);not null" json:"time"`
	Status      BookingStatus   `gorm:"type:varchar(20);not null" json:"status"`
	ClientName  string          `gorm:"not null" json:"clientName"`
	ClientEmail string          `json:"clientEmail"`
	ClientPhone string          `json:"clientPhone"`
	Notes       string          `json:"notes,omitempty"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}
