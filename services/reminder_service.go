package services

import (
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"barbershop-backend/clock"
	"barbershop-backend/models"
	"barbershop-backend/store"
)

// DefaultReminderTemplate is the message sent the day before a booking.
const DefaultReminderTemplate = "Hi [ClientName], this is a reminder of your [Service] with [Barber] tomorrow ([Date]) at [Time]."

// MessageSender delivers a text message and reports the channel used.
type MessageSender interface {
	Send(to, body string) (channel string, err error)
}

// TwilioSender sends over WhatsApp when the number is in E.164 format and
// over SMS otherwise.
type TwilioSender struct {
	client         *twilio.RestClient
	phoneNumber    string
	whatsappNumber string
}

func NewTwilioSender(accountSid, authToken, phoneNumber, whatsappNumber string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		phoneNumber:    phoneNumber,
		whatsappNumber: whatsappNumber,
	}
}

func (t *TwilioSender) Send(to, body string) (string, error) {
	channel := "sms"
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	if strings.HasPrefix(to, "+") && t.whatsappNumber != "" {
		channel = "whatsapp"
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + t.whatsappNumber)
	} else {
		params.SetTo(to)
		params.SetFrom(t.phoneNumber)
	}

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return channel, err
	}
	if resp.Sid != nil {
		log.Printf("reminders: message sent to %s, SID: %s", to, *resp.Sid)
	} else {
		log.Printf("reminders: message sent to %s, but no SID returned", to)
	}
	return channel, nil
}

// ReminderService texts clients the day before their booking. Logs are kept
// in memory and, when a database is configured, written to reminder_logs.
type ReminderService struct {
	store    *store.Store
	clock    clock.Clock
	sender   MessageSender
	db       *gorm.DB
	template string

	mu   sync.Mutex
	logs []models.ReminderLog
	cron *cron.Cron
}

func NewReminderService(st *store.Store, clk clock.Clock, sender MessageSender, db *gorm.DB) *ReminderService {
	return &ReminderService{store: st, clock: clk, sender: sender, db: db, template: DefaultReminderTemplate}
}

// SetTemplate replaces the message template. Blank templates are ignored.
func (s *ReminderService) SetTemplate(template string) {
	if strings.TrimSpace(template) == "" {
		return
	}
	s.mu.Lock()
	s.template = template
	s.mu.Unlock()
}

func (s *ReminderService) Template() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.template
}

// StartScheduler runs SendDailyReminders on the cron spec, for example
// "0 9 * * *" for every day at 9 AM.
func (s *ReminderService) StartScheduler(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { s.SendDailyReminders() }); err != nil {
		return err
	}
	c.Start()

	s.mu.Lock()
	s.cron = c
	s.mu.Unlock()
	log.Printf("reminders: scheduler started (%s)", spec)
	return nil
}

func (s *ReminderService) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}

// SendDailyReminders texts every open booking of tomorrow that has a phone
// number and has not been reminded yet.
func (s *ReminderService) SendDailyReminders() (sent, failed int) {
	log.Println("reminders: starting daily reminder processing")
	snap := s.store.Snapshot()
	tomorrow := models.DateOf(s.clock.Now()).AddDays(1)

	for _, b := range snap.Bookings {
		if !b.Date.Equal(tomorrow) || b.ClientPhone == "" {
			continue
		}
		if b.Status != models.BookingPending && b.Status != models.BookingConfirmed {
			continue
		}
		if s.alreadySent(b.ID) {
			continue
		}
		entry := s.remind(viewBooking(snap, b))
		if entry.Status == "sent" {
			sent++
		} else {
			failed++
		}
	}
	log.Printf("reminders: daily processing completed, %d sent, %d failed", sent, failed)
	return sent, failed
}

func (s *ReminderService) remind(v BookingView) models.ReminderLog {
	message := strings.NewReplacer(
		"[ClientName]", v.ClientName,
		"[Service]", v.ServiceName,
		"[Barber]", v.BarberName,
		"[Date]", v.Date.String(),
		"[Time]", v.Time,
	).Replace(s.Template())

	channel, err := s.sender.Send(v.ClientPhone, message)
	entry := models.ReminderLog{
		ID:        uuid.NewString(),
		BookingID: v.ID,
		Message:   message,
		Status:    "sent",
		Channel:   channel,
		SentAt:    s.clock.Now(),
	}
	if err != nil {
		log.Printf("reminders: failed to send message to %s: %v", v.ClientPhone, err)
		entry.Status = "failed"
		entry.ErrorMessage = err.Error()
	}

	s.mu.Lock()
	s.logs = append(s.logs, entry)
	s.mu.Unlock()

	if s.db != nil {
		if err := s.db.Create(&entry).Error; err != nil {
			log.Printf("reminders: failed to log reminder for booking %s: %v", v.ID, err)
		}
	}
	return entry
}

func (s *ReminderService) alreadySent(bookingID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.logs {
		if l.BookingID == bookingID && l.Status == "sent" {
			return true
		}
	}
	return false
}

// Logs returns the reminder log, newest first.
func (s *ReminderService) Logs() []models.ReminderLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ReminderLog, len(s.logs))
	for i, l := range s.logs {
		out[len(s.logs)-1-i] = l
	}
	return out
}
