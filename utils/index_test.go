package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateGrowth(t *testing.T) {
	tests := []struct {
		name      string
		today     float64
		yesterday float64
		want      float64
	}{
		{"both_zero", 0, 0, 0},
		{"from_zero", 500, 0, 100},
		{"doubled", 200, 100, 100},
		{"halved", 50, 100, -50},
		{"flat", 100, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateGrowth(tt.today, tt.yesterday))
		})
	}
}

func TestNewPublicCode(t *testing.T) {
	code := NewPublicCode("ORD")
	assert.True(t, strings.HasPrefix(code, "ORD-"))
	assert.Len(t, code, 12)
	assert.Equal(t, strings.ToUpper(code), code)

	other := NewPublicCode("ORD")
	assert.NotEqual(t, code, other)
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))

	p := StringPtr("hello")
	if assert.NotNil(t, p) {
		assert.Equal(t, "hello", *p)
	}
}
