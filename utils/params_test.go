package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 10, ParseIntDefault("", 10))
	assert.Equal(t, 10, ParseIntDefault("abc", 10))
	assert.Equal(t, 42, ParseIntDefault("42", 10))
	assert.Equal(t, -3, ParseIntDefault("-3", 10))
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 1, ClampInt(0, 1, 100))
	assert.Equal(t, 100, ClampInt(500, 1, 100))
	assert.Equal(t, 50, ClampInt(50, 1, 100))
}

func TestParseUint(t *testing.T) {
	v, ok := ParseUint("7")
	assert.True(t, ok)
	assert.Equal(t, uint(7), v)

	_, ok = ParseUint("-1")
	assert.False(t, ok)

	_, ok = ParseUint("abc")
	assert.False(t, ok)
}
