package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"barbershop-backend/clock"
	"barbershop-backend/models"
	"barbershop-backend/store"
)

// TransactionDraft is a manual ledger entry.
type TransactionDraft struct {
	Type          models.TransactionType
	Category      string
	Amount        decimal.Decimal
	Description   string
	Date          models.Date
	BarberID      string
	PaymentMethod models.PaymentMethod
}

func ValidateTransaction(d TransactionDraft) (models.Transaction, ValidationErrors) {
	var errs ValidationErrors
	if d.Type != models.TransactionIncome && d.Type != models.TransactionExpense {
		errs.Add("type", "must be income or expense")
	}
	if strings.TrimSpace(d.Category) == "" {
		errs.Add("category", "is required")
	}
	if !d.Amount.IsPositive() {
		errs.Add("amount", "must be greater than zero")
	}
	if d.Date.IsZero() {
		errs.Add("date", "is required")
	}
	if d.PaymentMethod != "" && !d.PaymentMethod.Valid() {
		errs.Add("paymentMethod", fmt.Sprintf("unknown payment method %q", d.PaymentMethod))
	}
	return models.Transaction{
		Type:          d.Type,
		Category:      strings.TrimSpace(d.Category),
		Amount:        d.Amount,
		Description:   d.Description,
		Date:          d.Date,
		BarberID:      d.BarberID,
		PaymentMethod: d.PaymentMethod,
	}, errs
}

// TransactionFilter narrows the ledger list. Zero fields match everything.
type TransactionFilter struct {
	Type     models.TransactionType
	Category string
	Range    *Selection
}

// FinanceService owns the ledger and the financial report.
type FinanceService struct {
	store    *store.Store
	clock    clock.Clock
	notifier Notifier
}

func NewFinanceService(st *store.Store, clk clock.Clock, n Notifier) *FinanceService {
	return &FinanceService{store: st, clock: clk, notifier: n}
}

// Transactions lists the ledger, newest date first.
func (s *FinanceService) Transactions(f TransactionFilter) []models.Transaction {
	all := s.store.Transactions()
	if f.Range != nil {
		r, ok := f.Range.Resolve(s.clock.Now())
		all = FilterByDate(all, r, ok, transactionDate)
	}
	out := make([]models.Transaction, 0, len(all))
	for _, t := range all {
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *FinanceService) CreateTransaction(d TransactionDraft) (models.Transaction, error) {
	t, errs := ValidateTransaction(d)
	if err := errs.Err(); err != nil {
		notifyError(s.notifier, "Could not record transaction", err)
		return models.Transaction{}, err
	}
	t.ID = uuid.NewString()
	t.CreatedAt = s.clock.Now()
	s.store.SetTransactions(func(prev []models.Transaction) []models.Transaction {
		return append(prev, t)
	})
	notifySuccess(s.notifier, "Transaction recorded", fmt.Sprintf("%s %s", t.Category, t.Amount.StringFixed(2)))
	return t, nil
}

func (s *FinanceService) DeleteTransaction(id string) error {
	err := s.store.Tx(func(tx *store.Tx) error {
		i := store.IndexOf(tx.Transactions, id, store.TransactionID)
		if i < 0 {
			return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
		}
		tx.Transactions = append(tx.Transactions[:i], tx.Transactions[i+1:]...)
		tx.Touch(store.KindTransactions)
		return nil
	})
	if err != nil {
		notifyError(s.notifier, "Could not delete transaction", err)
		return err
	}
	notifySuccess(s.notifier, "Transaction deleted", id)
	return nil
}

type PaymentSummary struct {
	Method models.PaymentMethod `json:"method"`
	Count  int                  `json:"count"`
	Total  decimal.Decimal      `json:"total"`
}

type BarberSummary struct {
	BarberID   string          `json:"barberId"`
	BarberName string          `json:"barberName"`
	Services   int             `json:"services"`
	Revenue    decimal.Decimal `json:"revenue"`
	Commission decimal.Decimal `json:"commission"`
}

// Report summarizes the ledger and completed orders of a range.
type Report struct {
	Range        DateRange        `json:"range"`
	Income       decimal.Decimal  `json:"income"`
	Expense      decimal.Decimal  `json:"expense"`
	Net          decimal.Decimal  `json:"net"`
	IncomeGrowth float64          `json:"incomeGrowth"`
	Transactions int              `json:"transactions"`
	ByPayment    []PaymentSummary `json:"byPayment"`
	ByBarber     []BarberSummary  `json:"byBarber"`
}

// Report computes the summary for sel. Growth compares income with the range
// of equal length right before it.
func (s *FinanceService) Report(sel Selection) (Report, error) {
	r, ok := sel.Resolve(s.clock.Now())
	if !ok {
		return Report{}, ValidationErrors{{Field: "from", Message: "a custom period needs a start date"}}
	}
	snap := s.store.Snapshot()
	rep := Report{Range: r, Income: decimal.Zero, Expense: decimal.Zero}

	payments := map[models.PaymentMethod]*PaymentSummary{}
	for _, t := range FilterByDate(snap.Transactions, r, true, transactionDate) {
		rep.Transactions++
		if t.Type == models.TransactionExpense {
			rep.Expense = rep.Expense.Add(t.Amount)
			continue
		}
		rep.Income = rep.Income.Add(t.Amount)
		if t.PaymentMethod == "" {
			continue
		}
		p, ok := payments[t.PaymentMethod]
		if !ok {
			p = &PaymentSummary{Method: t.PaymentMethod, Total: decimal.Zero}
			payments[t.PaymentMethod] = p
		}
		p.Count++
		p.Total = p.Total.Add(t.Amount)
	}
	rep.Net = rep.Income.Sub(rep.Expense)

	prev := DateRange{From: r.From.AddDays(-r.Days()), To: r.From.AddDays(-1)}
	prevIncome := decimal.Zero
	for _, t := range FilterByDate(snap.Transactions, prev, true, transactionDate) {
		if t.Type == models.TransactionIncome {
			prevIncome = prevIncome.Add(t.Amount)
		}
	}
	rep.IncomeGrowth = growthPercentage(rep.Income.InexactFloat64(), prevIncome.InexactFloat64())

	rep.ByPayment = make([]PaymentSummary, 0, len(payments))
	for _, m := range models.PaymentMethods {
		if p, ok := payments[m]; ok {
			rep.ByPayment = append(rep.ByPayment, *p)
		}
	}

	barbers := map[string]*BarberSummary{}
	for _, o := range FilterByDate(snap.ServiceOrders, r, true, orderDate) {
		if o.Status != models.OrderCompleted {
			continue
		}
		b, ok := barbers[o.BarberID]
		if !ok {
			b = &BarberSummary{BarberID: o.BarberID, BarberName: BarberNotFound, Revenue: decimal.Zero, Commission: decimal.Zero}
			barbers[o.BarberID] = b
		}
		b.Services++
		b.Revenue = b.Revenue.Add(o.Amount)
	}
	rep.ByBarber = make([]BarberSummary, 0, len(barbers))
	for _, b := range barbers {
		if i := store.IndexOf(snap.Barbers, b.BarberID, store.BarberID); i >= 0 {
			b.BarberName = snap.Barbers[i].Name
			pct := decimal.NewFromFloat(snap.Barbers[i].Commission)
			b.Commission = b.Revenue.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
		}
		rep.ByBarber = append(rep.ByBarber, *b)
	}
	sort.Slice(rep.ByBarber, func(i, j int) bool {
		if !rep.ByBarber[i].Revenue.Equal(rep.ByBarber[j].Revenue) {
			return rep.ByBarber[i].Revenue.GreaterThan(rep.ByBarber[j].Revenue)
		}
		return rep.ByBarber[i].BarberName < rep.ByBarber[j].BarberName
	})
	return rep, nil
}

func growthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}
