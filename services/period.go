package services

import (
	"fmt"
	"time"

	"barbershop-backend/models"
)

// Period is a named date range relative to the current day.
type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodThisWeek  Period = "this_week"
	PeriodLastWeek  Period = "last_week"
	PeriodThisMonth Period = "this_month"
	PeriodLastMonth Period = "last_month"
	PeriodThisYear  Period = "this_year"
	PeriodCustom    Period = "custom"
)

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodToday, PeriodYesterday, PeriodThisWeek, PeriodLastWeek,
		PeriodThisMonth, PeriodLastMonth, PeriodThisYear, PeriodCustom:
		return p, nil
	}
	return "", ValidationErrors{{Field: "period", Message: fmt.Sprintf("unknown period %q", s)}}
}

// DateRange is an inclusive interval of calendar days.
type DateRange struct {
	From models.Date `json:"from"`
	To   models.Date `json:"to"`
}

func (r DateRange) Contains(d models.Date) bool {
	return !d.Before(r.From) && !d.After(r.To)
}

// Days returns the number of calendar days covered by r.
func (r DateRange) Days() int {
	return int(r.To.Sub(r.From.Time).Hours()/24) + 1
}

// Selection is what the date-range picker hands over: a period token and, for
// the custom period, an explicit from/to pair.
type Selection struct {
	Period Period
	From   models.Date
	To     models.Date
}

// Resolve turns the selection into a concrete range, computed against now at
// every call. The boolean is false when the selection does not describe any
// range (a custom selection without a start); such a selection matches nothing.
func (s Selection) Resolve(now time.Time) (DateRange, bool) {
	today := models.DateOf(now)
	switch s.Period {
	case PeriodToday:
		return DateRange{today, today}, true
	case PeriodYesterday:
		y := today.AddDays(-1)
		return DateRange{y, y}, true
	case PeriodThisWeek:
		start := startOfWeek(today)
		return DateRange{start, start.AddDays(6)}, true
	case PeriodLastWeek:
		start := startOfWeek(today).AddDays(-7)
		return DateRange{start, start.AddDays(6)}, true
	case PeriodThisMonth:
		start := models.NewDate(today.Year(), today.Month(), 1)
		return DateRange{start, endOfMonth(start)}, true
	case PeriodLastMonth:
		start := models.NewDate(today.Year(), today.Month()-1, 1)
		return DateRange{start, endOfMonth(start)}, true
	case PeriodThisYear:
		return DateRange{models.NewDate(today.Year(), time.January, 1), models.NewDate(today.Year(), time.December, 31)}, true
	case PeriodCustom:
		if s.From.IsZero() {
			return DateRange{}, false
		}
		to := s.To
		if to.IsZero() {
			to = s.From
		}
		if to.Before(s.From) {
			return DateRange{to, s.From}, true
		}
		return DateRange{s.From, to}, true
	}
	return DateRange{}, false
}

// weeks run Sunday to Saturday
func startOfWeek(d models.Date) models.Date {
	return d.AddDays(-int(d.Weekday()))
}

func endOfMonth(first models.Date) models.Date {
	return models.NewDate(first.Year(), first.Month()+1, 1).AddDays(-1)
}

// FilterByDate keeps the items whose date falls in r. An unresolved range keeps
// nothing.
func FilterByDate[T any](items []T, r DateRange, ok bool, dateOf func(T) models.Date) []T {
	out := make([]T, 0)
	if !ok {
		return out
	}
	for _, it := range items {
		if r.Contains(dateOf(it)) {
			out = append(out, it)
		}
	}
	return out
}

func bookingDate(b models.Booking) models.Date         { return b.Date }
func transactionDate(t models.Transaction) models.Date { return t.Date }
func orderDate(o models.ServiceOrder) models.Date      { return o.Date }
