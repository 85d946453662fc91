package store

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbershop-backend/models"
)

type recordingBackend struct {
	initial Snapshot
	saves   [][]Kind
	last    Snapshot
}

func (b *recordingBackend) Load(context.Context) (Snapshot, error) { return b.initial, nil }

func (b *recordingBackend) Save(_ context.Context, snap Snapshot, changed []Kind) error {
	b.saves = append(b.saves, changed)
	b.last = snap
	return nil
}

func TestSetterAcceptsReplacementAndFunction(t *testing.T) {
	s := New()

	s.SetServices(Replace([]models.Service{{ID: "a", Title: "Cut", Duration: 30, Price: decimal.NewFromInt(35)}}))
	s.SetServices(func(prev []models.Service) []models.Service {
		return append(prev, models.Service{ID: "b", Title: "Beard", Duration: 20, Price: decimal.NewFromInt(25)})
	})

	got := s.Services()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestReadersReturnCopies(t *testing.T) {
	s := New()
	s.SetBarbers(Replace([]models.Barber{{ID: "1", Name: "Carlos"}}))

	list := s.Barbers()
	list[0].Name = "changed"

	b, ok := s.FindBarber("1")
	require.True(t, ok)
	assert.Equal(t, "Carlos", b.Name)
}

func TestTxRollsBackOnError(t *testing.T) {
	s := New()
	s.SetBookings(Replace([]models.Booking{{ID: "b1", Status: models.BookingPending}}))

	boom := errors.New("boom")
	err := s.Tx(func(tx *Tx) error {
		tx.Bookings[0].Status = models.BookingDone
		tx.Transactions = append(tx.Transactions, models.Transaction{ID: "t1"})
		return boom
	})
	require.ErrorIs(t, err, boom)

	b, _ := s.FindBooking("b1")
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Empty(t, s.Transactions())
}

func TestSequentialUpdatesSeeLatestSnapshot(t *testing.T) {
	s := New()
	for i := 0; i < 10; i++ {
		s.SetTransactions(func(prev []models.Transaction) []models.Transaction {
			return append(prev, models.Transaction{ID: string(rune('a' + i))})
		})
	}
	assert.Len(t, s.Transactions(), 10)
}

func TestBackendReceivesChangedKinds(t *testing.T) {
	b := &recordingBackend{initial: Snapshot{Clients: []models.Client{{ID: "c1", Name: "Ana"}}}}
	s, err := NewWithBackend(context.Background(), b)
	require.NoError(t, err)
	require.Len(t, s.Clients(), 1)

	err = s.Tx(func(tx *Tx) error {
		tx.ServiceOrders = append(tx.ServiceOrders, models.ServiceOrder{ID: "o1"})
		tx.Transactions = append(tx.Transactions, models.Transaction{ID: "t1"})
		tx.Touch(KindServiceOrders, KindTransactions)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, b.saves, 1)
	assert.Equal(t, []Kind{KindTransactions, KindServiceOrders}, b.saves[0])
	assert.Len(t, b.last.Transactions, 1)
}

func TestIndexOf(t *testing.T) {
	items := []models.Service{{ID: "x"}, {ID: "y"}}
	assert.Equal(t, 1, IndexOf(items, "y", ServiceID))
	assert.Equal(t, -1, IndexOf(items, "z", ServiceID))
}
