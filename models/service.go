package models

import (
	"github.com/shopspring/decimal"
)

type Service struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `json:"description"`
	Duration    int             `gorm:"not null" json:"duration"` // in minutes
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	IsActive    bool            `gorm:"not null" json:"isActive"`
}
