package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnchoredScheduleCountsFromRegistration(t *testing.T) {
	origin := time.Date(2025, 3, 10, 9, 0, 0, 500*int(time.Millisecond), time.UTC)
	s := anchored{origin: origin, every: time.Second}

	first := s.Next(origin)
	assert.Equal(t, origin.Add(time.Second), first, "no tick before a full interval")
	assert.Equal(t, origin.Add(2*time.Second), s.Next(first))
	assert.Equal(t, origin.Add(2*time.Second), s.Next(first.Add(30*time.Millisecond)), "late runs keep the anchor")
	assert.Equal(t, origin.Add(time.Second), s.Next(origin.Add(-time.Minute)))
}

func TestSystemStopIsIdempotent(t *testing.T) {
	s := NewSystem()
	defer s.Stop()

	stop := s.Every(time.Hour, func() {})
	stop()
	stop()
}
