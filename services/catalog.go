package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"barbershop-backend/models"
	"barbershop-backend/store"
	"barbershop-backend/utils"
)

// ServiceDraft is the admin form for a service.
type ServiceDraft struct {
	Title       string
	Description string
	Duration    int
	Price       decimal.Decimal
	IsActive    bool
}

// ValidateService checks a draft and builds the service it describes. The id
// is left empty for the caller to assign.
func ValidateService(d ServiceDraft) (models.Service, ValidationErrors) {
	var errs ValidationErrors
	if strings.TrimSpace(d.Title) == "" {
		errs.Add("title", "is required")
	}
	if d.Duration <= 0 {
		errs.Add("duration", "must be greater than zero")
	}
	if d.Price.IsNegative() {
		errs.Add("price", "must not be negative")
	}
	return models.Service{
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		Duration:    d.Duration,
		Price:       d.Price,
		IsActive:    d.IsActive,
	}, errs
}

// BarberDraft is the admin form for a barber.
type BarberDraft struct {
	Name           string
	Specialization string
	Email          string
	Phone          string
	Rating         float64
	Commission     float64
	IsActive       bool
}

func ValidateBarber(d BarberDraft) (models.Barber, ValidationErrors) {
	var errs ValidationErrors
	if strings.TrimSpace(d.Name) == "" {
		errs.Add("name", "is required")
	}
	if d.Rating < 0 || d.Rating > 5 {
		errs.Add("rating", "must be between 0 and 5")
	}
	if d.Commission < 0 || d.Commission > 100 {
		errs.Add("commissionPercent", "must be between 0 and 100")
	}
	if d.Phone != "" && !utils.ValidatePhone(d.Phone) {
		errs.Add("phone", "invalid phone number format")
	}
	return models.Barber{
		Name:           strings.TrimSpace(d.Name),
		Specialization: d.Specialization,
		Email:          strings.TrimSpace(d.Email),
		Phone:          strings.TrimSpace(d.Phone),
		Rating:         d.Rating,
		Commission:     d.Commission,
		IsActive:       d.IsActive,
	}, errs
}

// ClientDraft is the admin form for a client.
type ClientDraft struct {
	Name  string
	Email string
	Phone string
	IsVIP bool
}

func ValidateClient(d ClientDraft) (models.Client, ValidationErrors) {
	var errs ValidationErrors
	if strings.TrimSpace(d.Name) == "" {
		errs.Add("name", "is required")
	}
	if strings.TrimSpace(d.Email) == "" && strings.TrimSpace(d.Phone) == "" {
		errs.Add("contact", "email or phone is required")
	}
	if d.Phone != "" && !utils.ValidatePhone(d.Phone) {
		errs.Add("phone", "invalid phone number format")
	}
	return models.Client{
		Name:       strings.TrimSpace(d.Name),
		Email:      strings.TrimSpace(d.Email),
		Phone:      strings.TrimSpace(d.Phone),
		IsVIP:      d.IsVIP,
		TotalSpent: decimal.Zero,
	}, errs
}

// CatalogService manages services, barbers and clients. Services and barbers
// are never deleted, only deactivated.
type CatalogService struct {
	store    *store.Store
	notifier Notifier
}

func NewCatalogService(st *store.Store, n Notifier) *CatalogService {
	return &CatalogService{store: st, notifier: n}
}

func (s *CatalogService) Services(activeOnly bool) []models.Service {
	all := s.store.Services()
	if !activeOnly {
		return all
	}
	out := make([]models.Service, 0, len(all))
	for _, svc := range all {
		if svc.IsActive {
			out = append(out, svc)
		}
	}
	return out
}

func (s *CatalogService) Service(id string) (models.Service, error) {
	svc, ok := s.store.FindService(id)
	if !ok {
		return svc, fmt.Errorf("service %s: %w", id, ErrNotFound)
	}
	return svc, nil
}

func (s *CatalogService) CreateService(d ServiceDraft) (models.Service, error) {
	svc, errs := ValidateService(d)
	if err := errs.Err(); err != nil {
		notifyError(s.notifier, "Could not create service", err)
		return models.Service{}, err
	}
	svc.ID = uuid.NewString()
	s.store.SetServices(func(prev []models.Service) []models.Service {
		return append(prev, svc)
	})
	notifySuccess(s.notifier, "Service created", svc.Title)
	return svc, nil
}

// UpdateService replaces the editable fields of a service. Existing bookings
// keep the amount they captured.
func (s *CatalogService) UpdateService(id string, d ServiceDraft) (models.Service, error) {
	svc, errs := ValidateService(d)
	if err := errs.Err(); err != nil {
		notifyError(s.notifier, "Could not update service", err)
		return models.Service{}, err
	}
	svc.ID = id
	err := s.store.Tx(func(tx *store.Tx) error {
		i := store.IndexOf(tx.Services, id, store.ServiceID)
		if i < 0 {
			return fmt.Errorf("service %s: %w", id, ErrNotFound)
		}
		tx.Services[i] = svc
		tx.Touch(store.KindServices)
		return nil
	})
	if err != nil {
		notifyError(s.notifier, "Could not update service", err)
		return models.Service{}, err
	}
	notifySuccess(s.notifier, "Service updated", svc.Title)
	return svc, nil
}

func (s *CatalogService) SetServiceActive(id string, active bool) (models.Service, error) {
	var out models.Service
	err := s.store.Tx(func(tx *store.Tx) error {
		i := store.IndexOf(tx.Services, id, store.ServiceID)
		if i < 0 {
			return fmt.Errorf("service %s: %w", id, ErrNotFound)
		}
		tx.Services[i].IsActive = active
		tx.Touch(store.KindServices)
		out = tx.Services[i]
		return nil
	})
	if err != nil {
		notifyError(s.notifier, "Could not change service", err)
		return out, err
	}
	notifySuccess(s.notifier, activeTitle("Service", active), out.Title)
	return out, nil
}

func (s *CatalogService) Barbers(activeOnly bool) []models.Barber {
	all := s.store.Barbers()
	if !activeOnly {
		return all
	}
	out := make([]models.Barber, 0, len(all))
	for _, b := range all {
		if b.IsActive {
			out = append(out, b)
		}
	}
	return out
}

func (s *CatalogService) Barber(id string) (models.Barber, error) {
	b, ok := s.store.FindBarber(id)
	if !ok {
		return b, fmt.Errorf("barber %s: %w", id, ErrNotFound)
	}
	return b, nil
}

func (s *CatalogService) CreateBarber(d BarberDraft) (models.Barber, error) {
	b, errs := ValidateBarber(d)
	if err := errs.Err(); err != nil {
		notifyError(s.notifier, "Could not create barber", err)
		return models.Barber{}, err
	}
	b.ID = uuid.NewString()
	s.store.SetBarbers(func(prev []models.Barber) []models.Barber {
		return append(prev, b)
	})
	notifySuccess(s.notifier, "Barber created", b.Name)
	return b, nil
}

func (s *CatalogService) UpdateBarber(id string, d BarberDraft) (models.Barber, error) {
	b, errs := ValidateBarber(d)
	if err := errs.Err(); err != nil {
		notifyError(s.notifier, "Could not update barber", err)
		return models.Barber{}, err
	}
	b.ID = id
	err := s.store.Tx(func(tx *store.Tx) error {
		i := store.IndexOf(tx.Barbers, id, store.BarberID)
		if i < 0 {
			return fmt.Errorf("barber %s: %w", id, ErrNotFound)
		}
		tx.Barbers[i] = b
		tx.Touch(store.KindBarbers)
		return nil
	})
	if err != nil {
		notifyError(s.notifier, "Could not update barber", err)
		return models.Barber{}, err
	}
	notifySuccess(s.notifier, "Barber updated", b.Name)
	return b, nil
}

func (s *CatalogService) SetBarberActive(id string, active bool) (models.Barber, error) {
	var out models.Barber
	err := s.store.Tx(func(tx *store.Tx) error {
		i := store.IndexOf(tx.Barbers, id, store.BarberID)
		if i < 0 {
			return fmt.Errorf("barber %s: %w", id, ErrNotFound)
		}
		tx.Barbers[i].IsActive = active
		tx.Touch(store.KindBarbers)
		out = tx.Barbers[i]
		return nil
	})
	if err != nil {
		notifyError(s.notifier, "Could not change barber", err)
		return out, err
	}
	notifySuccess(s.notifier, activeTitle("Barber", active), out.Name)
	return out, nil
}

func (s *CatalogService) Clients() []models.Client {
	return s.store.Clients()
}

func (s *CatalogService) Client(id string) (models.Client, error) {
	c, ok := s.store.FindClient(id)
	if !ok {
		return c, fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	return c, nil
}

func (s *CatalogService) CreateClient(d ClientDraft) (models.Client, error) {
	c, errs := ValidateClient(d)
	if err := errs.Err(); err != nil {
		notifyError(s.notifier, "Could not create client", err)
		return models.Client{}, err
	}
	err := s.store.Tx(func(tx *store.Tx) error {
		if i := matchClient(tx.Clients, c.Name, c.Email, c.Phone); i >= 0 {
			return fmt.Errorf("client %s: %w", c.Name, ErrAlreadyExists)
		}
		c.ID = uuid.NewString()
		tx.Clients = append(tx.Clients, c)
		tx.Touch(store.KindClients)
		return nil
	})
	if err != nil {
		notifyError(s.notifier, "Could not create client", err)
		return models.Client{}, err
	}
	notifySuccess(s.notifier, "Client created", c.Name)
	return c, nil
}

// UpdateClient edits contact data and the VIP flag. Visit counters are owned
// by bookings and completed orders.
func (s *CatalogService) UpdateClient(id string, d ClientDraft) (models.Client, error) {
	next, errs := ValidateClient(d)
	if err := errs.Err(); err != nil {
		notifyError(s.notifier, "Could not update client", err)
		return models.Client{}, err
	}
	var out models.Client
	err := s.store.Tx(func(tx *store.Tx) error {
		i := store.IndexOf(tx.Clients, id, store.ClientID)
		if i < 0 {
			return fmt.Errorf("client %s: %w", id, ErrNotFound)
		}
		c := &tx.Clients[i]
		c.Name, c.Email, c.Phone, c.IsVIP = next.Name, next.Email, next.Phone, next.IsVIP
		tx.Touch(store.KindClients)
		out = *c
		return nil
	})
	if err != nil {
		notifyError(s.notifier, "Could not update client", err)
		return models.Client{}, err
	}
	notifySuccess(s.notifier, "Client updated", out.Name)
	return out, nil
}

func activeTitle(entity string, active bool) string {
	if active {
		return entity + " activated"
	}
	return entity + " deactivated"
}

// matchClient finds a client by phone, then email, then case-insensitive name.
func matchClient(clients []models.Client, name, email, phone string) int {
	phone = utils.NormalizePhone(phone)
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if phone != "" {
		for i, c := range clients {
			if utils.NormalizePhone(c.Phone) == phone {
				return i
			}
		}
	}
	if email != "" {
		for i, c := range clients {
			if strings.EqualFold(c.Email, email) {
				return i
			}
		}
	}
	if name != "" {
		for i, c := range clients {
			if strings.EqualFold(c.Name, name) {
				return i
			}
		}
	}
	return -1
}

// ensureClient returns the index of the client named by the contact fields,
// appending a new client when none is on file.
func ensureClient(tx *store.Tx, name, email, phone string) int {
	if i := matchClient(tx.Clients, name, email, phone); i >= 0 {
		return i
	}
	tx.Clients = append(tx.Clients, models.Client{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(name),
		Email:      strings.TrimSpace(email),
		Phone:      strings.TrimSpace(phone),
		TotalSpent: decimal.Zero,
	})
	tx.Touch(store.KindClients)
	return len(tx.Clients) - 1
}
