// Package clock provides the wall clock and the periodic scheduler used by the
// service-order timers. Production code runs on System; tests drive Manual.
package clock

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Scheduler runs fn every interval until the returned stop func is called.
// Calling stop more than once is safe. A callback already running when stop is
// called may still complete.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (stop func())
}

// System is the real clock. Periodic callbacks are cron entries on a single
// seconds-resolution cron instance started on first use.
type System struct {
	once sync.Once
	cron *cron.Cron
}

func NewSystem() *System {
	return &System{cron: cron.New(cron.WithSeconds())}
}

func (s *System) Now() time.Time { return time.Now() }

func (s *System) Every(interval time.Duration, fn func()) func() {
	s.once.Do(s.cron.Start)
	if interval <= 0 {
		interval = time.Second
	}
	id := s.cron.Schedule(anchored{origin: time.Now(), every: interval}, cron.FuncJob(fn))
	var stopOnce sync.Once
	return func() {
		stopOnce.Do(func() { s.cron.Remove(id) })
	}
}

// Stop halts the cron instance and waits for running callbacks.
func (s *System) Stop() {
	<-s.cron.Stop().Done()
}

// anchored fires at origin+every, origin+2*every and so on. cron.Every rounds
// to whole seconds, which would let the first tick land right after
// registration.
type anchored struct {
	origin time.Time
	every  time.Duration
}

func (a anchored) Next(t time.Time) time.Time {
	if t.Before(a.origin) {
		return a.origin.Add(a.every)
	}
	n := t.Sub(a.origin)/a.every + 1
	return a.origin.Add(n * a.every)
}
