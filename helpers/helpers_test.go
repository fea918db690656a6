package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReferCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateReferCode()
		assert.Len(t, code, ReferCodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected rune %q", r)
		}
		seen[code] = true
	}
	// 36^6 codes, 100 draws colliding down to a handful would mean a
	// broken generator
	assert.Greater(t, len(seen), 90)
}

func TestDeviceIDStable(t *testing.T) {
	assert.Equal(t, DeviceID(12345), DeviceID(12345))
	assert.NotEqual(t, DeviceID(12345), DeviceID(12346))
	assert.Len(t, DeviceID(12345), 32)
}

func TestTaxSplit(t *testing.T) {
	cases := []struct {
		amount float64
		rate   float64
		tax    float64
		net    float64
	}{
		{60, 5, 3, 57},
		{100, 5, 5, 95},
		{99.99, 5, 5, 94.99},
		{50, 0, 0, 50},
		{33.33, 2.5, 0.83, 32.50},
	}
	for _, tc := range cases {
		tax, net := TaxSplit(tc.amount, tc.rate)
		assert.Equal(t, tc.tax, tax, "tax of %v at %v%%", tc.amount, tc.rate)
		assert.Equal(t, tc.net, net, "net of %v at %v%%", tc.amount, tc.rate)
	}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, 10.57, FormatFloat(10.56789, 2))
	assert.Equal(t, 10.0, FormatFloat(10.001, 2))
	assert.Equal(t, 0.1, FormatFloat(0.1+0.2-0.2, 2))
}
