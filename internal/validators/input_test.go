package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+7 999 123-45-67", "+7 999 123-45-67"},
		{"8(999)123-45-67", "8(999)123-45-67"},
		{"  +49 30 1234567  ", "+49 30 1234567"},
		{"12345678", "12345678"},
		{"call me", ""},
		{"123", ""},
		{"", ""},
		{"+7 999 123-45-67 ext 12", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), "input %q", tt.in)
	}
}

func TestValidName(t *testing.T) {
	name, ok := ValidName("  Ivan Petrov ")
	assert.True(t, ok)
	assert.Equal(t, "Ivan Petrov", name)

	_, ok = ValidName("A")
	assert.False(t, ok)

	_, ok = ValidName("   ")
	assert.False(t, ok)
}

func TestValidTime(t *testing.T) {
	assert.True(t, ValidTime("00:00"))
	assert.True(t, ValidTime("23:59"))
	assert.True(t, ValidTime(" 09:30 "))

	assert.False(t, ValidTime("24:00"))
	assert.False(t, ValidTime("12:60"))
	assert.False(t, ValidTime("9:30"))
	assert.False(t, ValidTime("09.30"))
	assert.False(t, ValidTime(""))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2026-09-01"))
	assert.False(t, ValidDate("2026-13-01"))
	assert.False(t, ValidDate("01.09.2026"))
	assert.False(t, ValidDate(""))
}
