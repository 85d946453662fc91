// controllers/transaction.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"barbershop-backend/models"
	"barbershop-backend/services"
)

// CreateTransactionInput defines the expected JSON structure for a manual
// ledger entry
type CreateTransactionInput struct {
	Type          models.TransactionType `json:"type" binding:"required"`
	Category      string                 `json:"category" binding:"required"`
	Amount        decimal.Decimal        `json:"amount"`
	Description   string                 `json:"description"`
	Date          models.Date            `json:"date"`
	BarberID      string                 `json:"barberId"`
	PaymentMethod models.PaymentMethod   `json:"paymentMethod"`
}

type TransactionController struct {
	Finance *services.FinanceService
}

// GetTransactions lists the ledger filtered by ?type=&category=&period=.
func (tc *TransactionController) GetTransactions(c *gin.Context) {
	sel, err := parseSelection(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tc.Finance.Transactions(services.TransactionFilter{
		Type:     models.TransactionType(c.Query("type")),
		Category: c.Query("category"),
		Range:    sel,
	}))
}

func (tc *TransactionController) CreateTransaction(c *gin.Context) {
	var input CreateTransactionInput
	if !bindJSON(c, &input) {
		return
	}
	t, err := tc.Finance.CreateTransaction(services.TransactionDraft{
		Type:          input.Type,
		Category:      input.Category,
		Amount:        input.Amount,
		Description:   input.Description,
		Date:          input.Date,
		BarberID:      input.BarberID,
		PaymentMethod: input.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (tc *TransactionController) DeleteTransaction(c *gin.Context) {
	if err := tc.Finance.DeleteTransaction(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
