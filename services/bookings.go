package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"barbershop-backend/clock"
	"barbershop-backend/models"
	"barbershop-backend/store"
)

const (
	ServiceNotFound = "service not found"
	BarberNotFound  = "barber not found"
)

// StatusPolicy decides which booking status changes are accepted.
type StatusPolicy string

const (
	// StatusPolicyPermissive lets any status be set from any other.
	StatusPolicyPermissive StatusPolicy = "permissive"
	// StatusPolicyForward allows pending -> confirmed -> done and cancelling
	// a booking that is not finished yet.
	StatusPolicyForward StatusPolicy = "forward"
)

var forwardBookingTransitions = map[models.BookingStatus]map[models.BookingStatus]bool{
	models.BookingPending:   {models.BookingConfirmed: true, models.BookingCancelled: true},
	models.BookingConfirmed: {models.BookingDone: true, models.BookingCancelled: true},
	models.BookingDone:      {},
	models.BookingCancelled: {},
}

func ParseStatusPolicy(s string) (StatusPolicy, error) {
	switch p := StatusPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", StatusPolicyPermissive:
		return StatusPolicyPermissive, nil
	case StatusPolicyForward:
		return p, nil
	}
	return "", fmt.Errorf("unknown booking status policy %q", s)
}

func (p StatusPolicy) Allows(from, to models.BookingStatus) bool {
	if !to.Valid() {
		return false
	}
	if p == StatusPolicyForward {
		return forwardBookingTransitions[from][to]
	}
	return true
}

// BookingDraft is the admin booking form.
type BookingDraft struct {
	ServiceID   string
	BarberID    string
	Date        models.Date
	Time        string
	ClientName  string
	ClientEmail string
	ClientPhone string
	Notes       string
	Status      models.BookingStatus
}

// BookingPatch carries the fields an admin edit changes; nil means unchanged.
type BookingPatch struct {
	ServiceID   *string
	BarberID    *string
	Date        *models.Date
	Time        *string
	ClientName  *string
	ClientEmail *string
	ClientPhone *string
	Notes       *string
}

// BookingView is a booking with its service and barber names resolved.
type BookingView struct {
	models.Booking
	ServiceName string `json:"serviceName"`
	BarberName  string `json:"barberName"`
}

// CalendarDay groups the bookings of one day, sorted by time.
type CalendarDay struct {
	Date     models.Date   `json:"date"`
	Bookings []BookingView `json:"bookings"`
}

// BookingService owns booking intake and the booking lifecycle. Deleting a
// booking leaves its service orders and transactions in place.
type BookingService struct {
	store    *store.Store
	clock    clock.Clock
	notifier Notifier
	events   EventPublisher
	policy   StatusPolicy
}

func NewBookingService(st *store.Store, clk clock.Clock, n Notifier, events EventPublisher, policy StatusPolicy) *BookingService {
	if events == nil {
		events = NopPublisher{}
	}
	if policy == "" {
		policy = StatusPolicyPermissive
	}
	return &BookingService{store: st, clock: clk, notifier: n, events: events, policy: policy}
}

func (s *BookingService) Policy() StatusPolicy { return s.policy }

// Today is the current calendar day on the service clock.
func (s *BookingService) Today() models.Date {
	return models.DateOf(s.clock.Now())
}

// validateBookingDraft checks a draft against the catalog. calendarRules adds
// the date picker policy, which binds public intake but not the admin form.
func validateBookingDraft(d BookingDraft, snap store.Snapshot, today models.Date, calendarRules bool) ValidationErrors {
	var errs ValidationErrors
	if d.Date.IsZero() {
		errs.Add("date", "is required")
	} else if calendarRules {
		if err := DateSelectable(d.Date, today); err != nil {
			errs.Add("date", err.Error())
		}
	}
	if i := store.IndexOf(snap.Services, d.ServiceID, store.ServiceID); d.ServiceID == "" {
		errs.Add("serviceId", "is required")
	} else if i < 0 {
		errs.Add("serviceId", ServiceNotFound)
	} else if calendarRules && !snap.Services[i].IsActive {
		errs.Add("serviceId", "service is not available")
	}
	if i := store.IndexOf(snap.Barbers, d.BarberID, store.BarberID); d.BarberID == "" {
		errs.Add("barberId", "is required")
	} else if i < 0 {
		errs.Add("barberId", BarberNotFound)
	} else if calendarRules && !snap.Barbers[i].IsActive {
		errs.Add("barberId", "barber is not available")
	}
	if !IsTimeSlot(d.Time) {
		errs.Add("time", fmt.Sprintf("%q is not a bookable time", d.Time))
	}
	if strings.TrimSpace(d.ClientName) == "" {
		errs.Add("clientName", "is required")
	}
	if calendarRules {
		if strings.TrimSpace(d.ClientEmail) == "" {
			errs.Add("clientEmail", "is required")
		}
		if strings.TrimSpace(d.ClientPhone) == "" {
			errs.Add("clientPhone", "is required")
		}
	}
	if d.Status != "" && !d.Status.Valid() {
		errs.Add("status", fmt.Sprintf("unknown status %q", d.Status))
	}
	return errs
}

// SubmitWizard commits the wizard draft as a pending booking and resets the
// wizard. Only a wizard on the confirm step can be submitted. Nothing is
// written when any check fails.
func (s *BookingService) SubmitWizard(w *Wizard) (models.Booking, error) {
	d := w.Draft()
	if d.Date.IsZero() {
		err := ValidationErrors{{Field: "date", Message: "is required"}}
		notifyError(s.notifier, "Select a date", err)
		return models.Booking{}, err
	}
	if w.Step() != StepConfirm {
		err := ValidationErrors{{Field: "step", Message: fmt.Sprintf("finish the %s step before confirming", w.Step())}}
		notifyError(s.notifier, "Booking not confirmed", err)
		return models.Booking{}, err
	}
	b, err := s.commit(BookingDraft{
		ServiceID:   d.ServiceID,
		BarberID:    d.BarberID,
		Date:        d.Date,
		Time:        d.Time,
		ClientName:  d.ClientName,
		ClientEmail: d.ClientEmail,
		ClientPhone: d.ClientPhone,
		Notes:       d.Notes,
		Status:      models.BookingPending,
	}, true)
	if err != nil {
		notifyError(s.notifier, "Could not complete booking", err)
		return models.Booking{}, err
	}
	w.Reset()
	notifySuccess(s.notifier, "Booking received", fmt.Sprintf("%s on %s at %s", b.ClientName, b.Date, b.Time))
	return b, nil
}

// Intake runs a complete draft through the wizard steps in order and submits
// it. The first step that rejects the draft is reported to the notifier.
func (s *BookingService) Intake(d Draft) (models.Booking, error) {
	w := NewWizard()
	w.notifier = s.notifier
	w.SelectService(d.ServiceID)
	if err := w.Next(); err != nil {
		return models.Booking{}, stepError(err)
	}
	w.SelectBarber(d.BarberID)
	if err := w.Next(); err != nil {
		return models.Booking{}, stepError(err)
	}
	if !d.Date.IsZero() {
		if err := w.SelectDate(d.Date, s.Today()); err != nil {
			return models.Booking{}, err
		}
	}
	if err := w.Next(); err != nil {
		return models.Booking{}, stepError(err)
	}
	if err := w.SelectTime(d.Time); err != nil {
		return models.Booking{}, err
	}
	if err := w.Next(); err != nil {
		return models.Booking{}, stepError(err)
	}
	w.SetClientInfo(d.ClientName, d.ClientEmail, d.ClientPhone, d.Notes)
	if err := w.Next(); err != nil {
		return models.Booking{}, stepError(err)
	}
	return s.SubmitWizard(w)
}

func stepError(err error) error {
	return ValidationErrors{{Field: "step", Message: err.Error()}}
}

// Create records a booking from the admin form.
func (s *BookingService) Create(d BookingDraft) (models.Booking, error) {
	if d.Status == "" {
		d.Status = models.BookingPending
	}
	b, err := s.commit(d, false)
	if err != nil {
		notifyError(s.notifier, "Could not create booking", err)
		return models.Booking{}, err
	}
	notifySuccess(s.notifier, "Booking created", fmt.Sprintf("%s on %s at %s", b.ClientName, b.Date, b.Time))
	return b, nil
}

func (s *BookingService) commit(d BookingDraft, calendarRules bool) (models.Booking, error) {
	var b models.Booking
	err := s.store.Tx(func(tx *store.Tx) error {
		if errs := validateBookingDraft(d, tx.Snapshot, s.Today(), calendarRules); len(errs) > 0 {
			return errs
		}
		svc := tx.Services[store.IndexOf(tx.Services, d.ServiceID, store.ServiceID)]
		b = models.Booking{
			ID:          uuid.NewString(),
			ServiceID:   d.ServiceID,
			BarberID:    d.BarberID,
			Date:        d.Date,
			Time:        d.Time,
			Status:      d.Status,
			ClientName:  strings.TrimSpace(d.ClientName),
			ClientEmail: strings.TrimSpace(d.ClientEmail),
			ClientPhone: strings.TrimSpace(d.ClientPhone),
			Notes:       d.Notes,
			TotalAmount: svc.Price,
			CreatedAt:   s.clock.Now(),
		}
		tx.Bookings = append(tx.Bookings, b)
		ci := ensureClient(tx, b.ClientName, b.ClientEmail, b.ClientPhone)
		tx.Clients[ci].TotalBookings++
		tx.Touch(store.KindBookings, store.KindClients)
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}
	publish(s.events, EventBookingCreated, BookingCreatedEvent{
		BookingID:   b.ID,
		ServiceID:   b.ServiceID,
		BarberID:    b.BarberID,
		Date:        b.Date.String(),
		Time:        b.Time,
		ClientName:  b.ClientName,
		TotalAmount: b.TotalAmount.StringFixed(2),
	})
	return b, nil
}

func (s *BookingService) Get(id string) (BookingView, error) {
	snap := s.store.Snapshot()
	i := store.IndexOf(snap.Bookings, id, store.BookingID)
	if i < 0 {
		return BookingView{}, fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}
	return viewBooking(snap, snap.Bookings[i]), nil
}

// Update applies an admin edit. Changing the service captures the new
// service's current price; any other edit leaves the amount alone.
func (s *BookingService) Update(id string, p BookingPatch) (models.Booking, error) {
	var out models.Booking
	err := s.store.Tx(func(tx *store.Tx) error {
		i := store.IndexOf(tx.Bookings, id, store.BookingID)
		if i < 0 {
			return fmt.Errorf("booking %s: %w", id, ErrNotFound)
		}
		b := tx.Bookings[i]
		d := BookingDraft{
			ServiceID: b.ServiceID, BarberID: b.BarberID, Date: b.Date, Time: b.Time,
			ClientName: b.ClientName, ClientEmail: b.ClientEmail, ClientPhone: b.ClientPhone,
			Notes: b.Notes, Status: b.Status,
		}
		applyPatch(&d, p)
		if errs := validateBookingDraft(d, tx.Snapshot, s.Today(), false); len(errs) > 0 {
			return errs
		}
		if d.ServiceID != b.ServiceID {
			b.TotalAmount = tx.Services[store.IndexOf(tx.Services, d.ServiceID, store.ServiceID)].Price
		}
		b.ServiceID, b.BarberID, b.Date, b.Time = d.ServiceID, d.BarberID, d.Date, d.Time
		b.ClientName, b.ClientEmail, b.ClientPhone, b.Notes = d.ClientName, d.ClientEmail, d.ClientPhone, d.Notes
		tx.Bookings[i] = b
		tx.Touch(store.KindBookings)
		out = b
		return nil
	})
	if err != nil {
		notifyError(s.notifier, "Could not update booking", err)
		return models.Booking{}, err
	}
	notifySuccess(s.notifier, "Booking updated", out.ClientName)
	return out, nil
}

func applyPatch(d *BookingDraft, p BookingPatch) {
	if p.ServiceID != nil {
		d.ServiceID = *p.ServiceID
	}
	if p.BarberID != nil {
		d.BarberID = *p.BarberID
	}
	if p.Date != nil {
		d.Date = *p.Date
	}
	if p.Time != nil {
		d.Time = *p.Time
	}
	if p.ClientName != nil {
		d.ClientName = *p.ClientName
	}
	if p.ClientEmail != nil {
		d.ClientEmail = *p.ClientEmail
	}
	if p.ClientPhone != nil {
		d.ClientPhone = *p.ClientPhone
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
}

// SetStatus changes a booking's status under the configured policy.
func (s *BookingService) SetStatus(id string, status models.BookingStatus) (models.Booking, error) {
	var out models.Booking
	err := s.store.Tx(func(tx *store.Tx) error {
		if !status.Valid() {
			return ValidationErrors{{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}}
		}
		i := store.IndexOf(tx.Bookings, id, store.BookingID)
		if i < 0 {
			return fmt.Errorf("booking %s: %w", id, ErrNotFound)
		}
		from := tx.Bookings[i].Status
		if !s.policy.Allows(from, status) {
			return fmt.Errorf("booking %s from %s to %s: %w", id, from, status, ErrInvalidTransition)
		}
		tx.Bookings[i].Status = status
		tx.Touch(store.KindBookings)
		out = tx.Bookings[i]
		return nil
	})
	if err != nil {
		notifyError(s.notifier, "Could not change booking status", err)
		return models.Booking{}, err
	}
	notifySuccess(s.notifier, "Booking status updated", fmt.Sprintf("%s is now %s", out.ClientName, out.Status))
	return out, nil
}

// Delete removes the booking only. Linked service orders and transactions
// are kept.
func (s *BookingService) Delete(id string) error {
	var removed models.Booking
	err := s.store.Tx(func(tx *store.Tx) error {
		i := store.IndexOf(tx.Bookings, id, store.BookingID)
		if i < 0 {
			return fmt.Errorf("booking %s: %w", id, ErrNotFound)
		}
		removed = tx.Bookings[i]
		tx.Bookings = append(tx.Bookings[:i], tx.Bookings[i+1:]...)
		tx.Touch(store.KindBookings)
		return nil
	})
	if err != nil {
		notifyError(s.notifier, "Could not delete booking", err)
		return err
	}
	notifySuccess(s.notifier, "Booking deleted", removed.ClientName)
	return nil
}

// List returns the bookings inside the selected range ordered by date and
// time. A nil selection lists every booking.
func (s *BookingService) List(sel *Selection) []BookingView {
	snap := s.store.Snapshot()
	bookings := snap.Bookings
	if sel != nil {
		r, ok := sel.Resolve(s.clock.Now())
		bookings = FilterByDate(bookings, r, ok, bookingDate)
	}
	sortBookings(bookings)
	views := make([]BookingView, len(bookings))
	for i, b := range bookings {
		views[i] = viewBooking(snap, b)
	}
	return views
}

// Day returns the bookings of one calendar day sorted by time.
func (s *BookingService) Day(d models.Date) CalendarDay {
	views := s.List(&Selection{Period: PeriodCustom, From: d, To: d})
	return CalendarDay{Date: d, Bookings: views}
}

// Calendar buckets the bookings of the selected range by day.
func (s *BookingService) Calendar(sel *Selection) []CalendarDay {
	var days []CalendarDay
	for _, v := range s.List(sel) {
		if n := len(days); n > 0 && days[n-1].Date.Equal(v.Date) {
			days[n-1].Bookings = append(days[n-1].Bookings, v)
			continue
		}
		days = append(days, CalendarDay{Date: v.Date, Bookings: []BookingView{v}})
	}
	if days == nil {
		days = []CalendarDay{}
	}
	return days
}

func sortBookings(bookings []models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return slotLess(a.Time, b.Time)
	})
}

// slotLess orders times by slot position. Times outside the slot list, such
// as rows written before the list changed, fall back to string order.
func slotLess(a, b string) bool {
	ia, ib := SlotIndex(a), SlotIndex(b)
	if ia < 0 || ib < 0 {
		return a < b
	}
	return ia < ib
}

// viewBooking resolves names by id. Missing records resolve to placeholders.
func viewBooking(snap store.Snapshot, b models.Booking) BookingView {
	v := BookingView{Booking: b, ServiceName: ServiceNotFound, BarberName: BarberNotFound}
	if i := store.IndexOf(snap.Services, b.ServiceID, store.ServiceID); i >= 0 {
		v.ServiceName = snap.Services[i].Title
	}
	if i := store.IndexOf(snap.Barbers, b.BarberID, store.BarberID); i >= 0 {
		v.BarberName = snap.Barbers[i].Name
	}
	return v
}
