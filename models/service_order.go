package models

import (
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderWaiting    OrderStatus = "waiting"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// orderTransitions lists the forward moves of a service order.
var orderTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderWaiting:    {OrderInProgress: true, OrderCancelled: true},
	OrderInProgress: {OrderCompleted: true, OrderCancelled: true},
	OrderCompleted:  {},
	OrderCancelled:  {},
}

func (s OrderStatus) CanTransition(to OrderStatus) bool {
	return orderTransitions[s][to]
}

type PaymentMethod string

const (
	PaymentPix        PaymentMethod = "pix"
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
)

var PaymentMethods = []PaymentMethod{PaymentPix, PaymentCash, PaymentCreditCard, PaymentDebitCard}

func (p PaymentMethod) Valid() bool {
	for _, m := range PaymentMethods {
		if p == m {
			return true
		}
	}
	return false
}

// ServiceOrder is the operational record of performing a booked service.
// ActualDuration is only set once the order is completed.
type ServiceOrder struct {
	ID                string          `gorm:"primaryKey" json:"id"`
	BookingID         string          `gorm:"index" json:"bookingId"`
	BarberID          string          `gorm:"index;not null" json:"barberId"`
	ServiceID         string          `gorm:"index;not null" json:"serviceId"`
	ClientName        string          `json:"clientName"`
	ServiceName       string          `json:"serviceName"`
	EstimatedDuration int             `json:"estimatedDuration"`
	Status            OrderStatus     `gorm:"type:varchar(20);not null" json:"status"`
	StartTime         string          `gorm:"type:varchar(5)" json:"startTime,omitempty"`
	EndTime           string          `gorm:"type:varchar(5)" json:"endTime,omitempty"`
	ActualDuration    *int            `json:"actualDuration,omitempty"`
	PaymentMethod     PaymentMethod   `gorm:"type:varchar(20)" json:"paymentMethod,omitempty"`
	Amount            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date              Date            `gorm:"type:date" json:"date"`
	Time              string          `gorm:"type:varchar(5)" json:"time"`
}
