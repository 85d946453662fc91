package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbershop-backend/models"
)

func TestManualTransactions(t *testing.T) {
	f := newFixture(t)

	_, err := f.finance.CreateTransaction(TransactionDraft{Type: "gift", Amount: decimal.Zero})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	rent, err := f.finance.CreateTransaction(TransactionDraft{
		Type: models.TransactionExpense, Category: "Rent", Amount: decimal.NewFromInt(900), Date: f.today().AddDays(-1),
	})
	require.NoError(t, err)
	_, err = f.finance.CreateTransaction(TransactionDraft{
		Type: models.TransactionIncome, Category: "Products", Amount: decimal.NewFromInt(40), Date: f.today(),
		PaymentMethod: models.PaymentCash,
	})
	require.NoError(t, err)

	all := f.finance.Transactions(TransactionFilter{})
	require.Len(t, all, 2)
	assert.Equal(t, "Products", all[0].Category, "newest first")

	expenses := f.finance.Transactions(TransactionFilter{Type: models.TransactionExpense})
	require.Len(t, expenses, 1)
	assert.Equal(t, rent.ID, expenses[0].ID)

	today := f.finance.Transactions(TransactionFilter{Range: &Selection{Period: PeriodToday}})
	assert.Len(t, today, 1)

	require.NoError(t, f.finance.DeleteTransaction(rent.ID))
	assert.ErrorIs(t, f.finance.DeleteTransaction(rent.ID), ErrNotFound)
	assert.Len(t, f.finance.Transactions(TransactionFilter{}), 1)
}

func TestReport(t *testing.T) {
	f := newFixture(t)

	a := f.running(t, "10:00", "ana")
	b := f.running(t, "10:30", "bia")
	f.clock.Advance(20 * time.Minute)
	_, err := f.orders.Stop(a.ID, models.PaymentPix)
	require.NoError(t, err)
	_, err = f.orders.Stop(b.ID, models.PaymentCash)
	require.NoError(t, err)

	_, err = f.finance.CreateTransaction(TransactionDraft{
		Type: models.TransactionExpense, Category: "Supplies", Amount: decimal.NewFromInt(20), Date: f.today(),
	})
	require.NoError(t, err)
	_, err = f.finance.CreateTransaction(TransactionDraft{
		Type: models.TransactionIncome, Category: "Services", Amount: decimal.NewFromInt(35), Date: f.today().AddDays(-7),
		PaymentMethod: models.PaymentPix,
	})
	require.NoError(t, err)

	rep, err := f.finance.Report(Selection{Period: PeriodThisWeek})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(70).Equal(rep.Income), rep.Income.String())
	assert.True(t, decimal.NewFromInt(20).Equal(rep.Expense))
	assert.True(t, decimal.NewFromInt(50).Equal(rep.Net))
	assert.Equal(t, 3, rep.Transactions)
	assert.InDelta(t, 100.0, rep.IncomeGrowth, 0.001)

	require.Len(t, rep.ByPayment, 2)
	assert.Equal(t, models.PaymentPix, rep.ByPayment[0].Method)
	assert.Equal(t, models.PaymentCash, rep.ByPayment[1].Method)

	// orders are dated on their booking day, which is tomorrow
	require.Len(t, rep.ByBarber, 1)
	assert.Equal(t, "Carlos Silva", rep.ByBarber[0].BarberName)
	assert.Equal(t, 2, rep.ByBarber[0].Services)
	assert.True(t, decimal.NewFromInt(28).Equal(rep.ByBarber[0].Commission), rep.ByBarber[0].Commission.String())

	_, err = f.finance.Report(Selection{Period: PeriodCustom})
	assert.True(t, IsValidation(err))
}

func TestGrowthPercentage(t *testing.T) {
	assert.Equal(t, 0.0, growthPercentage(0, 0))
	assert.Equal(t, 100.0, growthPercentage(10, 0))
	assert.Equal(t, -50.0, growthPercentage(5, 10))
}
