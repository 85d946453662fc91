package models

import (
	"github.com/shopspring/decimal"
)

type Client struct {
	ID            string          `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Email         string          `gorm:"index" json:"email"`
	Phone         string          `gorm:"index" json:"phone"`
	TotalVisits   int             `gorm:"not null" json:"totalVisits"`
	TotalBookings int             `gorm:"not null" json:"totalBookings"`
	TotalSpent    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalSpent"`
	LastVisit     *Date           `gorm:"type:date" json:"lastVisit"`
	IsVIP         bool            `gorm:"not null" json:"isVip"`
}
