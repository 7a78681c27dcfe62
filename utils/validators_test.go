package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEventCode(t *testing.T) {
	valid := []string{"abc123", "ABC123", "000000", "zZzZzZ"}
	for _, code := range valid {
		assert.True(t, IsValidEventCode(code), code)
	}

	invalid := []string{"", "abc12", "abc1234", "ab-c12", "abc 12", "abc12!"}
	for _, code := range invalid {
		assert.False(t, IsValidEventCode(code), code)
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:30", "18:05", "23:59"}
	for _, v := range valid {
		assert.True(t, IsValidTimeOfDay(v), v)
	}

	invalid := []string{"", "24:00", "12:60", "9:30", "12-30", "noon"}
	for _, v := range invalid {
		assert.False(t, IsValidTimeOfDay(v), v)
	}
}

func TestGenerateEventCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateEventCode()
		assert.True(t, IsValidEventCode(code), code)
		seen[code] = true
	}

	// 100 draws from a 16^6 space colliding down to a handful would mean the
	// generator is broken, not unlucky.
	assert.Greater(t, len(seen), 90)
}
