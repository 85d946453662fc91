package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"barbershop-backend/models"
	"barbershop-backend/store"
)

// NewServiceIncome builds the income entry booked when order is completed.
func NewServiceIncome(order models.ServiceOrder, method models.PaymentMethod, today models.Date, now time.Time) models.Transaction {
	return models.Transaction{
		ID:             uuid.NewString(),
		Type:           models.TransactionIncome,
		Category:       models.CategoryServices,
		Amount:         order.Amount,
		Description:    fmt.Sprintf("%s - %s", order.ServiceName, order.ClientName),
		Date:           today,
		BookingID:      order.BookingID,
		ServiceOrderID: order.ID,
		BarberID:       order.BarberID,
		PaymentMethod:  method,
		CreatedAt:      now,
	}
}

// recordVisit books a completed order against the client's history, creating
// the client when the order names someone not on file.
func recordVisit(tx *store.Tx, order models.ServiceOrder, phone, email string, day models.Date) {
	i := ensureClient(tx, order.ClientName, email, phone)
	c := &tx.Clients[i]
	c.TotalVisits++
	c.TotalSpent = c.TotalSpent.Add(order.Amount)
	if c.LastVisit == nil || c.LastVisit.Before(day) {
		visit := day
		c.LastVisit = &visit
	}
	tx.Touch(store.KindClients)
}
