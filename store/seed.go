package store

import (
	"github.com/shopspring/decimal"

	"barbershop-backend/models"
)

// NewSeeded returns a store holding the demo catalog used by a fresh
// installation without a database.
func NewSeeded() *Store {
	s := New()
	s.data.Services = []models.Service{
		{ID: "1", Title: "Haircut", Description: "Classic or modern cut", Duration: 30, Price: decimal.NewFromInt(35), IsActive: true},
		{ID: "2", Title: "Beard", Description: "Beard trim with hot towel", Duration: 20, Price: decimal.NewFromInt(25), IsActive: true},
		{ID: "3", Title: "Haircut + Beard", Description: "Full package", Duration: 50, Price: decimal.NewFromInt(55), IsActive: true},
		{ID: "4", Title: "Eyebrow", Description: "Eyebrow design", Duration: 10, Price: decimal.NewFromInt(10), IsActive: true},
	}
	s.data.Barbers = []models.Barber{
		{ID: "1", Name: "Carlos Silva", Specialization: "Classic cuts", Email: "carlos@barbershop.local", Phone: "+5511990000001", Rating: 4.9, Commission: 40, IsActive: true},
		{ID: "2", Name: "Rafael Souza", Specialization: "Beards", Email: "rafael@barbershop.local", Phone: "+5511990000002", Rating: 4.7, Commission: 40, IsActive: true},
	}
	return s
}
