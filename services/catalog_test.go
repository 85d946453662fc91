package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateServiceCollectsEveryFailure(t *testing.T) {
	_, errs := ValidateService(ServiceDraft{Title: " ", Duration: 0, Price: decimal.NewFromInt(-1)})
	require.Len(t, errs, 3)
	assert.Equal(t, "title", errs[0].Field)
	assert.Equal(t, "duration", errs[1].Field)
	assert.Equal(t, "price", errs[2].Field)

	svc, errs := ValidateService(ServiceDraft{Title: " Shave ", Duration: 15, Price: decimal.NewFromInt(20), IsActive: true})
	assert.Empty(t, errs)
	assert.Equal(t, "Shave", svc.Title)
}

func TestValidateBarberAndClient(t *testing.T) {
	_, errs := ValidateBarber(BarberDraft{Name: "Leo", Rating: 6, Commission: 120, Phone: "abc"})
	assert.Len(t, errs, 3)

	_, errs = ValidateClient(ClientDraft{Name: "Ana"})
	require.Len(t, errs, 1)
	assert.Equal(t, "contact", errs[0].Field)

	_, errs = ValidateClient(ClientDraft{Name: "Ana", Email: "ana@example.com"})
	assert.Empty(t, errs)
}

func TestCatalogServices(t *testing.T) {
	f := newFixture(t)

	svc, err := f.catalog.CreateService(ServiceDraft{Title: "Shave", Duration: 15, Price: decimal.NewFromInt(20), IsActive: true})
	require.NoError(t, err)
	assert.NotEmpty(t, svc.ID)
	assert.Len(t, f.catalog.Services(false), 5)

	_, err = f.catalog.SetServiceActive(svc.ID, false)
	require.NoError(t, err)
	assert.Len(t, f.catalog.Services(true), 4)
	assert.Len(t, f.catalog.Services(false), 5)

	_, err = f.catalog.CreateService(ServiceDraft{})
	assert.True(t, IsValidation(err))
	assert.Equal(t, VariantError, lastNotification(f.feed).Variant)

	_, err = f.catalog.UpdateService("missing", ServiceDraft{Title: "x", Duration: 1})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.catalog.Service("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogBarbers(t *testing.T) {
	f := newFixture(t)
	b, err := f.catalog.CreateBarber(BarberDraft{Name: "Leo", Rating: 4.5, Commission: 35, IsActive: true})
	require.NoError(t, err)

	b, err = f.catalog.UpdateBarber(b.ID, BarberDraft{Name: "Leo Lima", Rating: 4.8, Commission: 35, IsActive: true})
	require.NoError(t, err)
	got, err := f.catalog.Barber(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Leo Lima", got.Name)

	_, err = f.catalog.SetBarberActive("1", false)
	require.NoError(t, err)
	assert.Len(t, f.catalog.Barbers(true), 2)
}

func TestCatalogClients(t *testing.T) {
	f := newFixture(t)
	c, err := f.catalog.CreateClient(ClientDraft{Name: "Ana", Phone: "+5511988887777"})
	require.NoError(t, err)

	_, err = f.catalog.CreateClient(ClientDraft{Name: "Ana Paula", Phone: "+5511988887777"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	c, err = f.catalog.UpdateClient(c.ID, ClientDraft{Name: "Ana", Phone: "+5511988887777", IsVIP: true})
	require.NoError(t, err)
	assert.True(t, c.IsVIP)
	assert.Len(t, f.catalog.Clients(), 1)

	_, err = f.catalog.Client("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
