package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"barbershop-backend/clock"
	"barbershop-backend/models"
	"barbershop-backend/storage"
	"barbershop-backend/store"
)

// TimerStorageKey is the KV key holding the orderId -> elapsed seconds map.
const TimerStorageKey = "barber-timers"

const tickInterval = time.Second

// FormatElapsed renders seconds as mm:ss, or hh:mm:ss from one hour on.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h, m, s := seconds/3600, seconds/60%60, seconds%60
	if seconds >= 3600 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// OrderFilter narrows List. Zero fields match everything.
type OrderFilter struct {
	Status   models.OrderStatus
	BarberID string
	Range    *Selection
}

// OrderView is a service order with its live timer.
type OrderView struct {
	models.ServiceOrder
	ElapsedSeconds int    `json:"elapsedSeconds"`
	Elapsed        string `json:"elapsed"`
}

// Completion is the result of stopping an order.
type Completion struct {
	Order       models.ServiceOrder `json:"order"`
	Transaction models.Transaction  `json:"transaction"`
}

// OrderEngine runs the service-order state machine and its per-order timers.
// Every running order has its own scheduler entry; each tick adds a second to
// that order and rewrites the whole elapsed map to the KV store.
type OrderEngine struct {
	store    *store.Store
	clock    clock.Clock
	sched    clock.Scheduler
	kv       storage.KV
	notifier Notifier
	events   EventPublisher

	// mu guards elapsed and stops and is held across the store transaction of
	// every state change, so a tick never observes a half-applied change.
	mu      sync.Mutex
	elapsed map[string]int
	stops   map[string]func()
}

func NewOrderEngine(st *store.Store, clk clock.Clock, sched clock.Scheduler, kv storage.KV, n Notifier, events EventPublisher) *OrderEngine {
	if events == nil {
		events = NopPublisher{}
	}
	return &OrderEngine{
		store:    st,
		clock:    clk,
		sched:    sched,
		kv:       kv,
		notifier: n,
		events:   events,
		elapsed:  map[string]int{},
		stops:    map[string]func(){},
	}
}

// Restore loads the persisted timers and resumes every in_progress order from
// its saved elapsed value. Unreadable data is logged and treated as empty.
func (e *OrderEngine) Restore(ctx context.Context) error {
	saved := e.load(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	for id, stop := range e.stops {
		stop()
		delete(e.stops, id)
	}
	e.elapsed = map[string]int{}
	for _, o := range e.store.ServiceOrders() {
		if o.Status != models.OrderInProgress {
			continue
		}
		e.elapsed[o.ID] = saved[o.ID]
		e.startTimerLocked(o.ID)
	}
	if len(e.elapsed) > 0 {
		log.Printf("orders: resumed %d running timer(s)", len(e.elapsed))
	}
	return e.persistLocked(ctx)
}

func (e *OrderEngine) load(ctx context.Context) map[string]int {
	raw, err := e.kv.Read(ctx, TimerStorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return map[string]int{}
	}
	if err != nil {
		log.Printf("orders: reading timers failed, starting empty: %v", err)
		return map[string]int{}
	}
	saved := map[string]int{}
	if err := json.Unmarshal(raw, &saved); err != nil {
		log.Printf("orders: malformed timer data, starting empty: %v", err)
		return map[string]int{}
	}
	for id, secs := range saved {
		if secs < 0 {
			saved[id] = 0
		}
	}
	return saved
}

func (e *OrderEngine) startTimerLocked(id string) {
	if _, running := e.stops[id]; running {
		return
	}
	e.stops[id] = e.sched.Every(tickInterval, func() { e.tick(id) })
}

func (e *OrderEngine) stopTimerLocked(id string) {
	if stop, ok := e.stops[id]; ok {
		stop()
		delete(e.stops, id)
	}
	delete(e.elapsed, id)
}

func (e *OrderEngine) tick(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	// a tick that lost the race with Stop or Cancel
	if _, running := e.stops[id]; !running {
		return
	}
	e.elapsed[id]++
	if err := e.persistLocked(context.Background()); err != nil {
		log.Printf("orders: saving timers failed: %v", err)
	}
}

func (e *OrderEngine) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(e.elapsed)
	if err != nil {
		return err
	}
	return e.kv.Write(ctx, TimerStorageKey, raw)
}

// CreateFromBooking opens a waiting order for a booking. A booking gets at
// most one order.
func (e *OrderEngine) CreateFromBooking(bookingID string) (models.ServiceOrder, error) {
	var order models.ServiceOrder
	err := e.store.Tx(func(tx *store.Tx) error {
		bi := store.IndexOf(tx.Bookings, bookingID, store.BookingID)
		if bi < 0 {
			return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
		}
		b := tx.Bookings[bi]
		if b.Status == models.BookingCancelled {
			return fmt.Errorf("booking %s is cancelled: %w", bookingID, ErrInvalidTransition)
		}
		for _, o := range tx.ServiceOrders {
			if o.BookingID == bookingID {
				return fmt.Errorf("service order for booking %s: %w", bookingID, ErrAlreadyExists)
			}
		}
		order = models.ServiceOrder{
			ID:          uuid.NewString(),
			BookingID:   b.ID,
			BarberID:    b.BarberID,
			ServiceID:   b.ServiceID,
			ClientName:  b.ClientName,
			ServiceName: ServiceNotFound,
			Status:      models.OrderWaiting,
			Amount:      b.TotalAmount,
			Date:        b.Date,
			Time:        b.Time,
		}
		if si := store.IndexOf(tx.Services, b.ServiceID, store.ServiceID); si >= 0 {
			order.ServiceName = tx.Services[si].Title
			order.EstimatedDuration = tx.Services[si].Duration
		}
		tx.ServiceOrders = append(tx.ServiceOrders, order)
		ensureClient(tx, b.ClientName, b.ClientEmail, b.ClientPhone)
		tx.Touch(store.KindServiceOrders)
		return nil
	})
	if err != nil {
		notifyError(e.notifier, "Could not open service order", err)
		return models.ServiceOrder{}, err
	}
	notifySuccess(e.notifier, "Service order opened", fmt.Sprintf("%s - %s", order.ServiceName, order.ClientName))
	return order, nil
}

// Start moves a waiting order to in_progress and starts its timer.
func (e *OrderEngine) Start(id string) (models.ServiceOrder, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	var order models.ServiceOrder
	err := e.store.Tx(func(tx *store.Tx) error {
		i := store.IndexOf(tx.ServiceOrders, id, store.ServiceOrderID)
		if i < 0 {
			return fmt.Errorf("service order %s: %w", id, ErrNotFound)
		}
		o := &tx.ServiceOrders[i]
		if !o.Status.CanTransition(models.OrderInProgress) {
			return fmt.Errorf("service order %s is %s: %w", id, o.Status, ErrInvalidTransition)
		}
		o.Status = models.OrderInProgress
		o.StartTime = now.Format("15:04")
		tx.Touch(store.KindServiceOrders)
		order = *o
		return nil
	})
	if err != nil {
		notifyError(e.notifier, "Could not start service", err)
		return models.ServiceOrder{}, err
	}
	e.elapsed[id] = 0
	e.startTimerLocked(id)
	if err := e.persistLocked(context.Background()); err != nil {
		log.Printf("orders: saving timers failed: %v", err)
	}
	notifySuccess(e.notifier, "Service started", fmt.Sprintf("%s - %s", order.ServiceName, order.ClientName))
	return order, nil
}

// Stop completes a running order and books its income in the same store
// transaction. Without a payment method nothing changes.
func (e *OrderEngine) Stop(id string, method models.PaymentMethod) (Completion, error) {
	if method == "" || !method.Valid() {
		err := ValidationErrors{{Field: "paymentMethod", Message: "select a payment method"}}
		notifyError(e.notifier, "Payment method required", err)
		return Completion{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	today := models.DateOf(now)
	var done Completion
	err := e.store.Tx(func(tx *store.Tx) error {
		i := store.IndexOf(tx.ServiceOrders, id, store.ServiceOrderID)
		if i < 0 {
			return fmt.Errorf("service order %s: %w", id, ErrNotFound)
		}
		o := tx.ServiceOrders[i]
		if !o.Status.CanTransition(models.OrderCompleted) {
			return fmt.Errorf("service order %s is %s: %w", id, o.Status, ErrInvalidTransition)
		}
		minutes := e.elapsed[id] / 60
		o.Status = models.OrderCompleted
		o.EndTime = now.Format("15:04")
		o.ActualDuration = &minutes
		o.PaymentMethod = method
		tx.ServiceOrders[i] = o

		txn := NewServiceIncome(o, method, today, now)
		tx.Transactions = append(tx.Transactions, txn)

		var phone, email string
		if bi := store.IndexOf(tx.Bookings, o.BookingID, store.BookingID); bi >= 0 {
			phone, email = tx.Bookings[bi].ClientPhone, tx.Bookings[bi].ClientEmail
		}
		recordVisit(tx, o, phone, email, today)

		tx.Touch(store.KindServiceOrders, store.KindTransactions)
		done = Completion{Order: o, Transaction: txn}
		return nil
	})
	if err != nil {
		notifyError(e.notifier, "Could not complete service", err)
		return Completion{}, err
	}
	e.stopTimerLocked(id)
	if err := e.persistLocked(context.Background()); err != nil {
		log.Printf("orders: saving timers failed: %v", err)
	}

	publish(e.events, EventServiceOrderCompleted, ServiceOrderCompletedEvent{
		ServiceOrderID: done.Order.ID,
		BookingID:      done.Order.BookingID,
		TransactionID:  done.Transaction.ID,
		BarberID:       done.Order.BarberID,
		PaymentMethod:  string(method),
		Amount:         done.Order.Amount.StringFixed(2),
		ActualDuration: *done.Order.ActualDuration,
		CompletedAt:    now.UTC().Format(time.RFC3339),
	})
	notifySuccess(e.notifier, "Service completed",
		fmt.Sprintf("%s - %s (%d min)", done.Order.ServiceName, done.Order.ClientName, *done.Order.ActualDuration))
	return done, nil
}

// Cancel moves a waiting or running order to cancelled and drops its timer.
func (e *OrderEngine) Cancel(id string) (models.ServiceOrder, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var order models.ServiceOrder
	err := e.store.Tx(func(tx *store.Tx) error {
		i := store.IndexOf(tx.ServiceOrders, id, store.ServiceOrderID)
		if i < 0 {
			return fmt.Errorf("service order %s: %w", id, ErrNotFound)
		}
		o := &tx.ServiceOrders[i]
		if !o.Status.CanTransition(models.OrderCancelled) {
			return fmt.Errorf("service order %s is %s: %w", id, o.Status, ErrInvalidTransition)
		}
		o.Status = models.OrderCancelled
		tx.Touch(store.KindServiceOrders)
		order = *o
		return nil
	})
	if err != nil {
		notifyError(e.notifier, "Could not cancel service", err)
		return models.ServiceOrder{}, err
	}
	e.stopTimerLocked(id)
	if err := e.persistLocked(context.Background()); err != nil {
		log.Printf("orders: saving timers failed: %v", err)
	}
	notifySuccess(e.notifier, "Service cancelled", fmt.Sprintf("%s - %s", order.ServiceName, order.ClientName))
	return order, nil
}

// Elapsed returns the seconds counted for a running order.
func (e *OrderEngine) Elapsed(id string) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, running := e.stops[id]; !running {
		return 0, false
	}
	return e.elapsed[id], true
}

// Display is the timer text shown for a running order.
func (e *OrderEngine) Display(id string) string {
	secs, _ := e.Elapsed(id)
	return FormatElapsed(secs)
}

func (e *OrderEngine) Get(id string) (OrderView, error) {
	o, ok := e.store.FindServiceOrder(id)
	if !ok {
		return OrderView{}, fmt.Errorf("service order %s: %w", id, ErrNotFound)
	}
	return e.view(o), nil
}

func (e *OrderEngine) view(o models.ServiceOrder) OrderView {
	v := OrderView{ServiceOrder: o}
	switch {
	case o.Status == models.OrderInProgress:
		v.ElapsedSeconds, _ = e.Elapsed(o.ID)
	case o.ActualDuration != nil:
		v.ElapsedSeconds = *o.ActualDuration * 60
	}
	v.Elapsed = FormatElapsed(v.ElapsedSeconds)
	return v
}

// List returns the orders matching f, ordered by date and time.
func (e *OrderEngine) List(f OrderFilter) []OrderView {
	orders := e.store.ServiceOrders()
	if f.Range != nil {
		r, ok := f.Range.Resolve(e.clock.Now())
		orders = FilterByDate(orders, r, ok, orderDate)
	}
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.BarberID != "" && o.BarberID != f.BarberID {
			continue
		}
		out = append(out, e.view(o))
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Time < b.Time
	})
	return out
}

// Close cancels every timer. Elapsed values stay in the KV store for the next
// Restore.
func (e *OrderEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, stop := range e.stops {
		stop()
		delete(e.stops, id)
	}
}
