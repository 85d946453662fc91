package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbershop-backend/clock"
	"barbershop-backend/models"
)

func TestWizardGatesEachStep(t *testing.T) {
	today := models.DateOf(monday)
	w := NewWizard()

	assert.ErrorIs(t, w.Next(), ErrStepIncomplete)
	assert.ErrorIs(t, w.Back(), ErrFirstStep)

	w.SelectService("1")
	require.NoError(t, w.Next())
	assert.Equal(t, StepBarber, w.Step())

	assert.ErrorIs(t, w.Next(), ErrStepIncomplete)
	w.SelectBarber("1")
	require.NoError(t, w.Next())

	assert.ErrorIs(t, w.Next(), ErrStepIncomplete)
	require.NoError(t, w.SelectDate(today.AddDays(1), today))
	require.NoError(t, w.Next())

	assert.Error(t, w.SelectTime("10:15"))
	assert.ErrorIs(t, w.Next(), ErrStepIncomplete)
	require.NoError(t, w.SelectTime("10:00"))
	require.NoError(t, w.Next())

	w.SetClientInfo("Ana", "", "+5511999999999", "")
	assert.False(t, w.CanAdvance(), "email is required")
	w.SetClientInfo("Ana", "ana@example.com", "+5511999999999", "")
	require.NoError(t, w.Next())
	assert.Equal(t, StepConfirm, w.Step())
	assert.ErrorIs(t, w.Next(), ErrLastStep)

	require.NoError(t, w.Back())
	assert.Equal(t, StepClientInfo, w.Step())
	assert.Equal(t, "Ana", w.Draft().ClientName, "going back keeps answers")
}

func TestDateSelectable(t *testing.T) {
	today := models.DateOf(monday)
	assert.NoError(t, DateSelectable(today, today))
	assert.Error(t, DateSelectable(today.AddDays(-1), today), "past")
	assert.Error(t, DateSelectable(today.AddDays(6), today), "Sunday")

	w := NewWizard()
	err := w.SelectDate(today.AddDays(-3), today)
	assert.True(t, IsValidation(err))
	assert.True(t, w.Draft().Date.IsZero())
}

func TestWizardReset(t *testing.T) {
	w := NewWizard()
	w.SelectService("1")
	require.NoError(t, w.Next())
	w.Reset()
	assert.Equal(t, StepService, w.Step())
	assert.Equal(t, Draft{}, w.Draft())
}

func TestWizardSessions(t *testing.T) {
	sessions := NewWizardSessions(clock.NewManual(monday), nil)
	id, state := sessions.Open()
	assert.Equal(t, StepService, state.Step)
	assert.Equal(t, 1, state.StepNumber)

	state, err := sessions.With(id, func(w *Wizard) error {
		w.SelectService("2")
		return w.Next()
	})
	require.NoError(t, err)
	assert.Equal(t, StepBarber, state.Step)
	assert.Equal(t, "2", state.Draft.ServiceID)

	sessions.Close(id)
	_, err = sessions.With(id, func(*Wizard) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWizardReportsRejectedAnswers(t *testing.T) {
	today := models.DateOf(monday)
	feed := NewFeed(10)
	sessions := NewWizardSessions(clock.NewManual(monday), feed)
	id, _ := sessions.Open()

	_, err := sessions.With(id, (*Wizard).Next)
	assert.ErrorIs(t, err, ErrStepIncomplete)
	n := lastNotification(feed)
	assert.Equal(t, VariantError, n.Variant)
	assert.Equal(t, "Choose a service", n.Title)

	_, err = sessions.With(id, func(w *Wizard) error { return w.SelectDate(today.AddDays(-1), today) })
	assert.True(t, IsValidation(err))
	assert.Equal(t, "Pick another date", lastNotification(feed).Title)

	_, err = sessions.With(id, func(w *Wizard) error { return w.SelectTime("10:15") })
	assert.True(t, IsValidation(err))
	assert.Equal(t, "Pick another time", lastNotification(feed).Title)
	assert.Len(t, feed.Recent(0), 3)
}

func TestWizardSessionsExpireWhenIdle(t *testing.T) {
	clk := clock.NewManual(monday)
	sessions := NewWizardSessions(clk, nil)
	stop := sessions.ExpireIdle(clk, 30*time.Minute)
	defer stop()

	idle, _ := sessions.Open()
	busy, _ := sessions.Open()

	clk.Advance(20 * time.Minute)
	_, err := sessions.With(busy, func(w *Wizard) error {
		w.SelectService("1")
		return nil
	})
	require.NoError(t, err)

	clk.Advance(15 * time.Minute)
	_, err = sessions.With(idle, func(*Wizard) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
	state, err := sessions.With(busy, func(*Wizard) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, "1", state.Draft.ServiceID)
	assert.Equal(t, 1, sessions.Len())

	stop()
	clk.Advance(2 * time.Hour)
	assert.Equal(t, 1, sessions.Len(), "nothing expires after stop")
	assert.Equal(t, 1, sessions.Prune(time.Hour))
	assert.Equal(t, 0, sessions.Len())
}
