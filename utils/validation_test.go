package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhones(t *testing.T) {
	assert.Equal(t, "+5511988887777", NormalizePhone(" +55 (11) 98888-7777 "))

	for _, ok := range []string{"+5511988887777", "11 98888.7777", "+1 (415) 555-0100"} {
		assert.True(t, ValidatePhone(ok), ok)
	}
	for _, bad := range []string{"", "0123", "+55 11 abc", "+1234567890123456"} {
		assert.False(t, ValidatePhone(bad), bad)
	}
}
