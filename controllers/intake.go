// controllers/intake.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barbershop-backend/models"
	"barbershop-backend/services"
)

// IntakeInput sets wizard answers. Only the fields present are applied.
type IntakeInput struct {
	ServiceID   *string      `json:"serviceId"`
	BarberID    *string      `json:"barberId"`
	Date        *models.Date `json:"date"`
	Time        *string      `json:"time"`
	ClientName  *string      `json:"clientName"`
	ClientEmail *string      `json:"clientEmail"`
	ClientPhone *string      `json:"clientPhone"`
	Notes       *string      `json:"notes"`
}

type intakeResult struct {
	Booking models.Booking       `json:"booking"`
	State   services.WizardState `json:"state"`
}

// IntakeController drives the public booking wizard, one session per client.
type IntakeController struct {
	Sessions *services.WizardSessions
	Bookings *services.BookingService
}

func (ic *IntakeController) OpenSession(c *gin.Context) {
	_, state := ic.Sessions.Open()
	c.JSON(http.StatusCreated, state)
}

func (ic *IntakeController) GetSession(c *gin.Context) {
	state, err := ic.Sessions.With(c.Param("id"), func(*services.Wizard) error { return nil })
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (ic *IntakeController) UpdateSession(c *gin.Context) {
	var input IntakeInput
	if !bindJSON(c, &input) {
		return
	}
	state, err := ic.Sessions.With(c.Param("id"), func(w *services.Wizard) error {
		if input.ServiceID != nil {
			w.SelectService(*input.ServiceID)
		}
		if input.BarberID != nil {
			w.SelectBarber(*input.BarberID)
		}
		if input.Date != nil {
			if err := w.SelectDate(*input.Date, ic.Bookings.Today()); err != nil {
				return err
			}
		}
		if input.Time != nil {
			if err := w.SelectTime(*input.Time); err != nil {
				return err
			}
		}
		if input.ClientName != nil || input.ClientEmail != nil || input.ClientPhone != nil || input.Notes != nil {
			d := w.Draft()
			w.SetClientInfo(orElse(input.ClientName, d.ClientName), orElse(input.ClientEmail, d.ClientEmail),
				orElse(input.ClientPhone, d.ClientPhone), orElse(input.Notes, d.Notes))
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (ic *IntakeController) Next(c *gin.Context) {
	ic.move(c, (*services.Wizard).Next)
}

func (ic *IntakeController) Back(c *gin.Context) {
	ic.move(c, (*services.Wizard).Back)
}

func (ic *IntakeController) move(c *gin.Context, step func(*services.Wizard) error) {
	state, err := ic.Sessions.With(c.Param("id"), step)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Submit books the session's draft. The session stays open, reset to the
// first step, so the same client can book again.
func (ic *IntakeController) Submit(c *gin.Context) {
	var booking models.Booking
	state, err := ic.Sessions.With(c.Param("id"), func(w *services.Wizard) error {
		var err error
		booking, err = ic.Bookings.SubmitWizard(w)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, intakeResult{Booking: booking, State: state})
}

func (ic *IntakeController) CloseSession(c *gin.Context) {
	ic.Sessions.Close(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// Book runs a complete draft through the wizard in one request.
func (ic *IntakeController) Book(c *gin.Context) {
	var draft services.Draft
	if !bindJSON(c, &draft) {
		return
	}
	b, err := ic.Bookings.Intake(draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func orElse(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
