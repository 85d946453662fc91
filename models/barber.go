package models

type Barber struct {
	ID             string  `gorm:"primaryKey" json:"id"`
	Name           string  `gorm:"not null" json:"name"`
	Specialization string  `json:"specialization"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Rating         float64 `gorm:"type:decimal(3,2)" json:"rating"`          // 0-5
	Commission     float64 `gorm:"type:decimal(5,2)" json:"commissionPercent"` // 0-100
	IsActive       bool    `gorm:"not null" json:"isActive"`
}
