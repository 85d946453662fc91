// Package store is the entity store of the back office. It holds the six
// collections in memory, funnels every write through one lock and mirrors
// committed collections to an optional Backend.
package store

import (
	"context"
	"log"
	"slices"
	"sync"

	"barbershop-backend/models"
)

// Kind names a collection.
type Kind string

const (
	KindServices      Kind = "services"
	KindBarbers       Kind = "barbers"
	KindClients       Kind = "clients"
	KindBookings      Kind = "bookings"
	KindTransactions  Kind = "transactions"
	KindServiceOrders Kind = "service_orders"
)

var AllKinds = []Kind{KindServices, KindBarbers, KindClients, KindBookings, KindTransactions, KindServiceOrders}

// Snapshot is a full copy of every collection.
type Snapshot struct {
	Services      []models.Service
	Barbers       []models.Barber
	Clients       []models.Client
	Bookings      []models.Booking
	Transactions  []models.Transaction
	ServiceOrders []models.ServiceOrder
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{
		Services:      slices.Clone(s.Services),
		Barbers:       slices.Clone(s.Barbers),
		Clients:       slices.Clone(s.Clients),
		Bookings:      slices.Clone(s.Bookings),
		Transactions:  slices.Clone(s.Transactions),
		ServiceOrders: slices.Clone(s.ServiceOrders),
	}
}

// Backend persists collections after they change in memory.
type Backend interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot, changed []Kind) error
}

// Updater computes the next version of a collection from the previous one.
type Updater[T any] func(prev []T) []T

// Replace is an Updater that ignores the previous collection.
func Replace[T any](items []T) Updater[T] {
	return func([]T) []T { return items }
}

// Store is safe for concurrent use. Readers get copies; writers always see the
// latest committed snapshot.
type Store struct {
	mu      sync.RWMutex
	data    Snapshot
	backend Backend
}

func New() *Store {
	return &Store{}
}

// NewWithBackend loads the initial collections from b and mirrors every later
// change back to it.
func NewWithBackend(ctx context.Context, b Backend) (*Store, error) {
	snap, err := b.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Store{data: snap, backend: b}, nil
}

// Snapshot returns a copy of every collection.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.clone()
}

func (s *Store) Services() []models.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.Services)
}

func (s *Store) Barbers() []models.Barber {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.Barbers)
}

func (s *Store) Clients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.Clients)
}

func (s *Store) Bookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.Bookings)
}

func (s *Store) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.Transactions)
}

func (s *Store) ServiceOrders() []models.ServiceOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.ServiceOrders)
}

func (s *Store) SetServices(fn Updater[models.Service]) {
	s.set(KindServices, func(snap *Snapshot) { snap.Services = fn(snap.Services) })
}

func (s *Store) SetBarbers(fn Updater[models.Barber]) {
	s.set(KindBarbers, func(snap *Snapshot) { snap.Barbers = fn(snap.Barbers) })
}

func (s *Store) SetClients(fn Updater[models.Client]) {
	s.set(KindClients, func(snap *Snapshot) { snap.Clients = fn(snap.Clients) })
}

func (s *Store) SetBookings(fn Updater[models.Booking]) {
	s.set(KindBookings, func(snap *Snapshot) { snap.Bookings = fn(snap.Bookings) })
}

func (s *Store) SetTransactions(fn Updater[models.Transaction]) {
	s.set(KindTransactions, func(snap *Snapshot) { snap.Transactions = fn(snap.Transactions) })
}

func (s *Store) SetServiceOrders(fn Updater[models.ServiceOrder]) {
	s.set(KindServiceOrders, func(snap *Snapshot) { snap.ServiceOrders = fn(snap.ServiceOrders) })
}

func (s *Store) set(kind Kind, apply func(*Snapshot)) {
	_ = s.Tx(func(tx *Tx) error {
		apply(&tx.Snapshot)
		tx.Touch(kind)
		return nil
	})
}

// Tx is the mutable working copy handed to a transaction function.
type Tx struct {
	Snapshot
	changed map[Kind]bool
}

// Touch marks a collection as modified so the backend rewrites it.
func (tx *Tx) Touch(kinds ...Kind) {
	for _, k := range kinds {
		tx.changed[k] = true
	}
}

// Tx runs fn against a copy of the latest collections. The copy replaces the
// store contents only when fn returns nil, so a failed fn leaves every
// collection untouched.
func (s *Store) Tx(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{Snapshot: s.data.clone(), changed: map[Kind]bool{}}
	if err := fn(tx); err != nil {
		return err
	}
	s.data = tx.Snapshot

	if s.backend != nil && len(tx.changed) > 0 {
		changed := make([]Kind, 0, len(tx.changed))
		for _, k := range AllKinds {
			if tx.changed[k] {
				changed = append(changed, k)
			}
		}
		if err := s.backend.Save(context.Background(), s.data.clone(), changed); err != nil {
			log.Printf("store: mirror %v failed: %v", changed, err)
		}
	}
	return nil
}
