// utils/dates.go
package utils

import (
	"strings"

	"barbershop-backend/models"
)

// ParseOptionalDate parses a "2006-01-02" query value. An empty value yields
// the zero Date.
func ParseOptionalDate(s string) (models.Date, error) {
	if strings.TrimSpace(s) == "" {
		return models.Date{}, nil
	}
	return models.ParseDate(s)
}
