package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbershop-backend/models"
	"barbershop-backend/store"
)

func TestSubmitWizardCreatesPendingBookingAtServicePrice(t *testing.T) {
	f := newFixture(t)
	w := NewWizard()
	w.SelectService("1")
	require.NoError(t, w.Next())
	w.SelectBarber("1")
	require.NoError(t, w.Next())
	require.NoError(t, w.SelectDate(f.today().AddDays(1), f.today()))
	require.NoError(t, w.Next())
	require.NoError(t, w.SelectTime("10:00"))
	require.NoError(t, w.Next())
	w.SetClientInfo("Ana", "ana@example.com", "+5511988887777", "")
	require.NoError(t, w.Next())

	b, err := f.bookings.SubmitWizard(w)
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, b.Status)
	assert.True(t, decimal.NewFromInt(35).Equal(b.TotalAmount))
	assert.Equal(t, "10:00", b.Time)
	assert.Equal(t, "2026-10-20", b.Date.String())
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, StepService, w.Step(), "wizard is reset")
	assert.Equal(t, Draft{}, w.Draft())

	require.Len(t, f.store.Bookings(), 1)
	clients := f.store.Clients()
	require.Len(t, clients, 1)
	assert.Equal(t, "Ana", clients[0].Name)
	assert.Equal(t, 1, clients[0].TotalBookings)

	assert.Equal(t, VariantSuccess, lastNotification(f.feed).Variant)
	assert.Equal(t, []string{EventBookingCreated}, f.events.keys())
}

func TestSubmitWizardWithoutDateWritesNothing(t *testing.T) {
	f := newFixture(t)
	w := NewWizard()
	w.SelectService("1")
	w.SelectBarber("1")
	w.SetClientInfo("Ana", "ana@example.com", "+5511988887777", "")

	_, err := f.bookings.SubmitWizard(w)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, f.store.Bookings())
	assert.Empty(t, f.store.Clients())
	assert.Equal(t, VariantError, lastNotification(f.feed).Variant)
	assert.Equal(t, "1", w.Draft().ServiceID, "a failed submit keeps the draft")
}

func TestSubmitWizardRequiresConfirmStep(t *testing.T) {
	f := newFixture(t)
	w := NewWizard()
	w.SelectService("1")
	w.SelectBarber("1")
	require.NoError(t, w.SelectDate(f.today().AddDays(1), f.today()))
	require.NoError(t, w.SelectTime("10:00"))
	w.SetClientInfo("Ana", "ana@example.com", "+5511988887777", "")
	require.Equal(t, StepService, w.Step())

	_, err := f.bookings.SubmitWizard(w)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, f.store.Bookings())
	assert.Empty(t, f.store.Clients())
	assert.Equal(t, VariantError, lastNotification(f.feed).Variant)
	assert.Equal(t, StepService, w.Step())
	assert.Empty(t, f.events.keys())
}

func TestIntakeReportsMissingContactInfo(t *testing.T) {
	f := newFixture(t)
	_, err := f.bookings.Intake(Draft{
		ServiceID: "1", BarberID: "1", Date: f.today().AddDays(1), Time: "10:00",
		ClientName: "Ana",
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	n := lastNotification(f.feed)
	assert.Equal(t, VariantError, n.Variant)
	assert.Equal(t, "Fill in your name, email and phone", n.Title)
	assert.Empty(t, f.store.Bookings())
}

func TestSubmitWizardRevalidatesCatalog(t *testing.T) {
	f := newFixture(t)
	_, err := f.catalog.SetBarberActive("1", false)
	require.NoError(t, err)

	_, err = f.bookings.Intake(Draft{
		ServiceID: "1", BarberID: "1", Date: f.today().AddDays(1), Time: "10:00",
		ClientName: "Ana", ClientEmail: "ana@example.com", ClientPhone: "+5511988887777",
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, f.store.Bookings())
}

func TestIntakeRejectsSunday(t *testing.T) {
	f := newFixture(t)
	_, err := f.bookings.Intake(Draft{
		ServiceID: "1", BarberID: "1", Date: f.today().AddDays(6), Time: "10:00",
		ClientName: "Ana", ClientEmail: "ana@example.com", ClientPhone: "+5511988887777",
	})
	require.Error(t, err)
	assert.Empty(t, f.store.Bookings())
}

func TestBookingKeepsPriceWhenServiceChanges(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "1", "10:00", "ana")

	_, err := f.catalog.UpdateService("1", ServiceDraft{Title: "Haircut", Duration: 30, Price: decimal.NewFromInt(50), IsActive: true})
	require.NoError(t, err)

	got, err := f.bookings.Get(b.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(35).Equal(got.TotalAmount))
}

func TestRepeatClientIsMatched(t *testing.T) {
	f := newFixture(t)
	f.book(t, "1", "10:00", "ana")
	_, err := f.bookings.Intake(Draft{
		ServiceID: "2", BarberID: "2", Date: f.today().AddDays(1), Time: "11:00",
		ClientName: "ANA", ClientEmail: "ana@example.com", ClientPhone: "+5511977776666",
	})
	require.NoError(t, err)

	clients := f.store.Clients()
	require.Len(t, clients, 1)
	assert.Equal(t, 2, clients[0].TotalBookings)
}

func TestSetStatusPermissive(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "1", "10:00", "ana")

	for _, st := range []models.BookingStatus{models.BookingDone, models.BookingPending, models.BookingCancelled, models.BookingConfirmed} {
		got, err := f.bookings.SetStatus(b.ID, st)
		require.NoError(t, err)
		assert.Equal(t, st, got.Status)
	}

	_, err := f.bookings.SetStatus(b.ID, "archived")
	assert.True(t, IsValidation(err))
	_, err = f.bookings.SetStatus("missing", models.BookingDone)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetStatusForward(t *testing.T) {
	f := newFixture(t)
	f.bookings = NewBookingService(f.store, f.clock, f.feed, nil, StatusPolicyForward)
	b := f.book(t, "1", "10:00", "ana")

	_, err := f.bookings.SetStatus(b.ID, models.BookingDone)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.bookings.SetStatus(b.ID, models.BookingConfirmed)
	require.NoError(t, err)
	_, err = f.bookings.SetStatus(b.ID, models.BookingDone)
	require.NoError(t, err)

	_, err = f.bookings.SetStatus(b.ID, models.BookingCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	got, _ := f.bookings.Get(b.ID)
	assert.Equal(t, models.BookingDone, got.Status)
}

func TestParseStatusPolicy(t *testing.T) {
	p, err := ParseStatusPolicy("")
	require.NoError(t, err)
	assert.Equal(t, StatusPolicyPermissive, p)
	p, err = ParseStatusPolicy("Forward")
	require.NoError(t, err)
	assert.Equal(t, StatusPolicyForward, p)
	_, err = ParseStatusPolicy("strict")
	assert.Error(t, err)
}

func TestListResolvesNamesWithPlaceholders(t *testing.T) {
	f := newFixture(t)
	f.book(t, "4", "10:00", "ana")
	f.store.SetServices(func(prev []models.Service) []models.Service { return prev[:3] })

	views := f.bookings.List(&Selection{Period: PeriodThisWeek})
	require.Len(t, views, 1)
	assert.Equal(t, ServiceNotFound, views[0].ServiceName)
	assert.Equal(t, "Carlos Silva", views[0].BarberName)

	assert.Empty(t, f.bookings.List(&Selection{Period: PeriodLastWeek}))
	assert.Empty(t, f.bookings.List(&Selection{Period: PeriodCustom}))
	assert.Len(t, f.bookings.List(nil), 1)
}

func TestCalendarSortsByDayAndSlot(t *testing.T) {
	f := newFixture(t)
	tomorrow := f.today().AddDays(1)
	for _, d := range []BookingDraft{
		{ServiceID: "1", BarberID: "1", Date: tomorrow.AddDays(1), Time: "09:00", ClientName: "c"},
		{ServiceID: "1", BarberID: "1", Date: tomorrow, Time: "14:30", ClientName: "b"},
		{ServiceID: "1", BarberID: "2", Date: tomorrow, Time: "09:30", ClientName: "a"},
	} {
		_, err := f.bookings.Create(d)
		require.NoError(t, err)
	}

	day := f.bookings.Day(tomorrow)
	require.Len(t, day.Bookings, 2)
	assert.Equal(t, "09:30", day.Bookings[0].Time)
	assert.Equal(t, "14:30", day.Bookings[1].Time)

	cal := f.bookings.Calendar(&Selection{Period: PeriodThisWeek})
	require.Len(t, cal, 2)
	assert.True(t, cal[0].Date.Equal(tomorrow))
	assert.Len(t, cal[1].Bookings, 1)
}

func TestAdminCreateAndUpdate(t *testing.T) {
	f := newFixture(t)

	_, err := f.bookings.Create(BookingDraft{ServiceID: "1", BarberID: "1", Date: f.today(), Time: "10:10", ClientName: "ana"})
	assert.True(t, IsValidation(err), "off-slot time")
	_, err = f.bookings.Create(BookingDraft{ServiceID: "9", BarberID: "1", Date: f.today(), Time: "10:00", ClientName: "ana"})
	assert.True(t, IsValidation(err), "unknown service")

	b, err := f.bookings.Create(BookingDraft{ServiceID: "1", BarberID: "1", Date: f.today().AddDays(-2), Time: "10:00", ClientName: "ana"})
	require.NoError(t, err, "admins may record past bookings")
	assert.Equal(t, models.BookingPending, b.Status)

	notes := "walk-in"
	b, err = f.bookings.Update(b.ID, BookingPatch{Notes: &notes})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(35).Equal(b.TotalAmount))

	svc := "3"
	b, err = f.bookings.Update(b.ID, BookingPatch{ServiceID: &svc})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(55).Equal(b.TotalAmount))
	assert.Equal(t, "walk-in", b.Notes)

	bad := "07:00"
	_, err = f.bookings.Update(b.ID, BookingPatch{Time: &bad})
	assert.True(t, IsValidation(err))
}

func TestDeleteBookingDoesNotCascade(t *testing.T) {
	f := newFixture(t)
	o := f.running(t, "10:00", "ana")
	_, err := f.orders.Stop(o.ID, models.PaymentCash)
	require.NoError(t, err)

	require.NoError(t, f.bookings.Delete(o.BookingID))
	assert.Empty(t, f.store.Bookings())
	assert.Len(t, f.store.ServiceOrders(), 1)
	assert.Len(t, f.store.Transactions(), 1)

	assert.ErrorIs(t, f.bookings.Delete(o.BookingID), ErrNotFound)
}

func TestDayOrdersTimesOutsideSlotList(t *testing.T) {
	f := newFixture(t)
	day := f.today()
	f.store.SetBookings(store.Replace([]models.Booking{
		{ID: "a", ServiceID: "1", BarberID: "1", Date: day, Time: "10:00", Status: models.BookingPending},
		{ID: "b", ServiceID: "1", BarberID: "1", Date: day, Time: "08:15", Status: models.BookingPending},
		{ID: "c", ServiceID: "1", BarberID: "1", Date: day, Time: "19:45", Status: models.BookingPending},
		{ID: "d", ServiceID: "1", BarberID: "1", Date: day, Time: "07:50", Status: models.BookingPending},
		{ID: "e", ServiceID: "1", BarberID: "1", Date: day, Time: "09:00", Status: models.BookingPending},
	}))

	var times []string
	for _, v := range f.bookings.Day(day).Bookings {
		times = append(times, v.Time)
	}
	assert.Equal(t, []string{"07:50", "08:15", "09:00", "10:00", "19:45"}, times)
}
