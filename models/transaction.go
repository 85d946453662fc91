package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// CategoryServices is the ledger category of income produced by completed
// service orders.
const CategoryServices = "Services"

type Transaction struct {
	ID             string          `gorm:"primaryKey" json:"id"`
	Type           TransactionType `gorm:"type:varchar(10);not null" json:"type"`
	Category       string          `gorm:"not null" json:"category"`
	Amount         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description    string          `json:"description"`
	Date           Date            `gorm:"type:date;index;not null" json:"date"`
	BookingID      string          `gorm:"index" json:"bookingId,omitempty"`
	ServiceOrderID string          `gorm:"index" json:"serviceOrderId,omitempty"`
	BarberID       string          `gorm:"index" json:"barberId,omitempty"`
	PaymentMethod  PaymentMethod   `gorm:"type:varchar(20)" json:"paymentMethod,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}
