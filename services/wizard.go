package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"barbershop-backend/clock"
	"barbershop-backend/models"
)

// Step is a page of the booking intake wizard.
type Step int

const (
	StepService Step = iota + 1
	StepBarber
	StepDate
	StepTime
	StepClientInfo
	StepConfirm
)

var stepNames = map[Step]string{
	StepService:    "service",
	StepBarber:     "barber",
	StepDate:       "date",
	StepTime:       "time",
	StepClientInfo: "client_info",
	StepConfirm:    "confirm",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// stepHints tells the client what a step is missing.
var stepHints = map[Step]string{
	StepService:    "Choose a service",
	StepBarber:     "Choose a barber",
	StepDate:       "Choose a date",
	StepTime:       "Choose a time",
	StepClientInfo: "Fill in your name, email and phone",
}

var (
	ErrStepIncomplete = errors.New("current step is incomplete")
	ErrFirstStep      = errors.New("already at the first step")
	ErrLastStep       = errors.New("already at the last step")
)

// Draft accumulates the wizard answers.
type Draft struct {
	ServiceID   string      `json:"serviceId"`
	BarberID    string      `json:"barberId"`
	Date        models.Date `json:"date"`
	Time        string      `json:"time"`
	ClientName  string      `json:"clientName"`
	ClientEmail string      `json:"clientEmail"`
	ClientPhone string      `json:"clientPhone"`
	Notes       string      `json:"notes"`
}

// CanAdvance reports whether the draft satisfies the gate of step.
func CanAdvance(step Step, d Draft) bool {
	switch step {
	case StepService:
		return d.ServiceID != ""
	case StepBarber:
		return d.BarberID != ""
	case StepDate:
		return !d.Date.IsZero()
	case StepTime:
		return d.Time != ""
	case StepClientInfo:
		return strings.TrimSpace(d.ClientName) != "" &&
			strings.TrimSpace(d.ClientEmail) != "" &&
			strings.TrimSpace(d.ClientPhone) != ""
	case StepConfirm:
		return true
	}
	return false
}

// DateSelectable is the date picker policy: no past days and no Sundays.
func DateSelectable(d, today models.Date) error {
	if d.Before(today) {
		return errors.New("date is in the past")
	}
	if d.Weekday() == time.Sunday {
		return errors.New("the shop is closed on Sundays")
	}
	return nil
}

// Wizard is the linear six-step intake flow. It is not safe for concurrent use;
// WizardSessions serializes access for HTTP callers. Rejected moves and
// answers are reported to notifier when one is set.
type Wizard struct {
	step     Step
	draft    Draft
	notifier Notifier
}

func NewWizard() *Wizard {
	return &Wizard{step: StepService}
}

func (w *Wizard) Step() Step   { return w.step }
func (w *Wizard) Draft() Draft { return w.draft }

func (w *Wizard) CanAdvance() bool {
	return CanAdvance(w.step, w.draft)
}

func (w *Wizard) Next() error {
	if w.step == StepConfirm {
		return ErrLastStep
	}
	if !w.CanAdvance() {
		err := fmt.Errorf("%s: %w", w.step, ErrStepIncomplete)
		notifyError(w.notifier, stepHints[w.step], err)
		return err
	}
	w.step++
	return nil
}

func (w *Wizard) Back() error {
	if w.step == StepService {
		return ErrFirstStep
	}
	w.step--
	return nil
}

func (w *Wizard) Reset() {
	w.step = StepService
	w.draft = Draft{}
}

func (w *Wizard) SelectService(id string) { w.draft.ServiceID = strings.TrimSpace(id) }
func (w *Wizard) SelectBarber(id string)  { w.draft.BarberID = strings.TrimSpace(id) }

// SelectDate applies the date picker policy before storing d.
func (w *Wizard) SelectDate(d models.Date, today models.Date) error {
	if err := DateSelectable(d, today); err != nil {
		verr := ValidationErrors{{Field: "date", Message: err.Error()}}
		notifyError(w.notifier, "Pick another date", verr)
		return verr
	}
	w.draft.Date = d
	return nil
}

func (w *Wizard) SelectTime(slot string) error {
	if !IsTimeSlot(slot) {
		verr := ValidationErrors{{Field: "time", Message: fmt.Sprintf("%q is not a bookable time", slot)}}
		notifyError(w.notifier, "Pick another time", verr)
		return verr
	}
	w.draft.Time = slot
	return nil
}

func (w *Wizard) SetClientInfo(name, email, phone, notes string) {
	w.draft.ClientName = name
	w.draft.ClientEmail = email
	w.draft.ClientPhone = phone
	w.draft.Notes = notes
}

// WizardState is the serializable view of a wizard.
type WizardState struct {
	ID         string `json:"id"`
	Step       Step   `json:"step"`
	StepNumber int    `json:"stepNumber"`
	CanAdvance bool   `json:"canAdvance"`
	Draft      Draft  `json:"draft"`
}

func (w *Wizard) State(id string) WizardState {
	return WizardState{ID: id, Step: w.step, StepNumber: int(w.step), CanAdvance: w.CanAdvance(), Draft: w.draft}
}

// SessionIdleTimeout is how long an intake session survives without use.
const SessionIdleTimeout = 30 * time.Minute

// WizardSessions keeps one wizard per intake session. Sessions idle for
// longer than the expiry set with ExpireIdle are dropped.
type WizardSessions struct {
	mu       sync.Mutex
	clock    clock.Clock
	notifier Notifier
	sessions map[string]*session
}

type session struct {
	wizard   *Wizard
	lastUsed time.Time
}

func NewWizardSessions(clk clock.Clock, n Notifier) *WizardSessions {
	return &WizardSessions{clock: clk, notifier: n, sessions: map[string]*session{}}
}

func (s *WizardSessions) Open() (string, WizardState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	w := NewWizard()
	w.notifier = s.notifier
	s.sessions[id] = &session{wizard: w, lastUsed: s.clock.Now()}
	return id, w.State(id)
}

// With runs fn on the session's wizard while holding the sessions lock.
func (s *WizardSessions) With(id string, fn func(w *Wizard) error) (WizardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return WizardState{}, fmt.Errorf("intake session %s: %w", id, ErrNotFound)
	}
	sess.lastUsed = s.clock.Now()
	err := fn(sess.wizard)
	return sess.wizard.State(id), err
}

func (s *WizardSessions) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len reports the number of open sessions.
func (s *WizardSessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Prune drops the sessions unused for longer than idle and returns how many
// were dropped.
func (s *WizardSessions) Prune(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	dropped := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastUsed) > idle {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}

// ExpireIdle prunes idle sessions once a minute until the returned func is
// called.
func (s *WizardSessions) ExpireIdle(sched clock.Scheduler, idle time.Duration) func() {
	if idle <= 0 {
		idle = SessionIdleTimeout
	}
	return sched.Every(time.Minute, func() {
		if n := s.Prune(idle); n > 0 {
			log.Printf("intake: expired %d idle sessions", n)
		}
	})
}
