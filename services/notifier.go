package services

import (
	"log"
	"sync"
	"time"
)

type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantInfo    Variant = "info"
	VariantWarning Variant = "warning"
)

type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     Variant   `json:"variant"`
	At          time.Time `json:"at"`
}

// Notifier receives user-facing messages. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to the standard logger.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) {
	log.Printf("[%s] %s: %s", n.Variant, n.Title, n.Description)
}

// Feed keeps the most recent notifications so a front end can show them.
type Feed struct {
	mu    sync.Mutex
	max   int
	items []Notification
}

func NewFeed(max int) *Feed {
	if max <= 0 {
		max = 100
	}
	return &Feed{max: max}
}

func (f *Feed) Notify(n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
	if len(f.items) > f.max {
		f.items = f.items[len(f.items)-f.max:]
	}
}

// Recent returns up to limit notifications, newest first.
func (f *Feed) Recent(limit int) []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit <= 0 || limit > len(f.items) {
		limit = len(f.items)
	}
	out := make([]Notification, 0, limit)
	for i := len(f.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.items[i])
	}
	return out
}

// MultiNotifier fans a notification out to several sinks.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(n Notification) {
	for _, sink := range m {
		send(sink, n)
	}
}

// send delivers n and swallows a panicking sink.
func send(sink Notifier, n Notification) {
	if sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notifier: sink panicked: %v", r)
		}
	}()
	if n.At.IsZero() {
		n.At = time.Now()
	}
	sink.Notify(n)
}

func notifySuccess(sink Notifier, title, description string) {
	send(sink, Notification{Title: title, Description: description, Variant: VariantSuccess})
}

func notifyError(sink Notifier, title string, err error) {
	send(sink, Notification{Title: title, Description: err.Error(), Variant: VariantError})
}
