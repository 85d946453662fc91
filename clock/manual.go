package clock

import (
	"sync"
	"time"
)

// Manual is a logical clock whose time only moves on Advance. Callbacks
// registered with Every fire synchronously inside Advance, in due order.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers map[int]*manualTimer
}

type manualTimer struct {
	seq      int
	interval time.Duration
	next     time.Time
	fn       func()
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start, timers: map[int]*manualTimer{}}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Every(interval time.Duration, fn func()) func() {
	if interval <= 0 {
		interval = time.Second
	}
	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.timers[seq] = &manualTimer{seq: seq, interval: interval, next: m.now.Add(interval), fn: fn}
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.timers, seq)
		m.mu.Unlock()
	}
}

// Active reports how many periodic callbacks are registered.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Advance moves the clock forward by d, firing every callback that falls due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		t := m.nextDue(target)
		if t == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = t.next
		t.next = t.next.Add(t.interval)
		fn := t.fn
		m.mu.Unlock()

		fn()
	}
}

// nextDue returns the earliest timer due at or before target. Ties go to the
// timer registered first.
func (m *Manual) nextDue(target time.Time) *manualTimer {
	var due *manualTimer
	for _, t := range m.timers {
		if t.next.After(target) {
			continue
		}
		if due == nil || t.next.Before(due.next) || (t.next.Equal(due.next) && t.seq < due.seq) {
			due = t
		}
	}
	return due
}
