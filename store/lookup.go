package store

import (
	"barbershop-backend/models"
)

// IndexOf returns the position of the first item whose id matches, or -1.
func IndexOf[T any](items []T, id string, idOf func(T) string) int {
	for i, it := range items {
		if idOf(it) == id {
			return i
		}
	}
	return -1
}

func ServiceID(s models.Service) string           { return s.ID }
func BarberID(b models.Barber) string             { return b.ID }
func ClientID(c models.Client) string             { return c.ID }
func BookingID(b models.Booking) string           { return b.ID }
func TransactionID(t models.Transaction) string   { return t.ID }
func ServiceOrderID(o models.ServiceOrder) string { return o.ID }

func (s *Store) FindService(id string) (models.Service, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.data.Services, id, ServiceID)
}

func (s *Store) FindBarber(id string) (models.Barber, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.data.Barbers, id, BarberID)
}

func (s *Store) FindClient(id string) (models.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.data.Clients, id, ClientID)
}

func (s *Store) FindBooking(id string) (models.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.data.Bookings, id, BookingID)
}

func (s *Store) FindServiceOrder(id string) (models.ServiceOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.data.ServiceOrders, id, ServiceOrderID)
}

func find[T any](items []T, id string, idOf func(T) string) (T, bool) {
	if i := IndexOf(items, id, idOf); i >= 0 {
		return items[i], true
	}
	var zero T
	return zero, false
}
