package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "Rs. 0.00",
		"48.5":      "Rs. 48.50",
		"25000":     "Rs. 25,000.00",
		"1234567.5": "Rs. 1,234,567.50",
		"-1200":     "Rs. -1,200.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "2", formatQuantity(decimal.RequireFromString("2.000")))
	assert.Equal(t, "0.25", formatQuantity(decimal.RequireFromString("0.250")))
}
