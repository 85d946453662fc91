// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// Allows a + prefix followed by up to 15 digits.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// NormalizePhone strips the separators clients type into phone fields, so
// "+55 (11) 98888-7777" and "+5511988887777" compare equal.
func NormalizePhone(phone string) string {
	return phoneSeparators.Replace(strings.TrimSpace(phone))
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}
