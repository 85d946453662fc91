package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"barbershop-backend/clock"
	"barbershop-backend/models"
	"barbershop-backend/storage"
	"barbershop-backend/store"
)

// Monday 19 October 2026, 10:00.
var monday = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, key)
	return nil
}

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

type fixture struct {
	store    *store.Store
	clock    *clock.Manual
	kv       storage.KV
	feed     *Feed
	events   *recordingPublisher
	bookings *BookingService
	orders   *OrderEngine
	catalog  *CatalogService
	finance  *FinanceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  store.NewSeeded(),
		clock:  clock.NewManual(monday),
		kv:     storage.NewMemory(),
		feed:   NewFeed(50),
		events: &recordingPublisher{},
	}
	f.bookings = NewBookingService(f.store, f.clock, f.feed, f.events, StatusPolicyPermissive)
	f.orders = NewOrderEngine(f.store, f.clock, f.clock, f.kv, f.feed, f.events)
	f.catalog = NewCatalogService(f.store, f.feed)
	f.finance = NewFinanceService(f.store, f.clock, f.feed)
	t.Cleanup(f.orders.Close)
	return f
}

func (f *fixture) today() models.Date { return models.DateOf(f.clock.Now()) }

// book submits a full wizard for tomorrow and returns the booking.
func (f *fixture) book(t *testing.T, serviceID, slot, client string) models.Booking {
	t.Helper()
	b, err := f.bookings.Intake(Draft{
		ServiceID:   serviceID,
		BarberID:    "1",
		Date:        f.today().AddDays(1),
		Time:        slot,
		ClientName:  client,
		ClientEmail: client + "@example.com",
		ClientPhone: "+55119" + slot[:2] + slot[3:] + "0000",
	})
	if err != nil {
		t.Fatalf("booking %s: %v", client, err)
	}
	return b
}

// running books, opens and starts an order.
func (f *fixture) running(t *testing.T, slot, client string) models.ServiceOrder {
	t.Helper()
	b := f.book(t, "1", slot, client)
	o, err := f.orders.CreateFromBooking(b.ID)
	if err != nil {
		t.Fatalf("open order: %v", err)
	}
	o, err = f.orders.Start(o.ID)
	if err != nil {
		t.Fatalf("start order: %v", err)
	}
	return o
}

func lastNotification(f *Feed) Notification {
	recent := f.Recent(1)
	if len(recent) == 0 {
		return Notification{}
	}
	return recent[0]
}
