package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountToCents(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		want   int64
	}{
		{"whole", 20, 2000},
		{"two decimals", 19.99, 1999},
		{"rounds up past cent precision", 19.999, 2000},
		{"rounds down past cent precision", 19.991, 1999},
		{"small", 0.01, 1},
		{"zero", 0, 0},
		{"negative", -12.34, -1234},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AmountToCents(tc.amount))
		})
	}
}

func TestCentsToAmount(t *testing.T) {
	assert.Equal(t, 20.00, CentsToAmount(2000))
	assert.Equal(t, 19.99, CentsToAmount(1999))
	assert.Equal(t, -12.34, CentsToAmount(-1234))
}

// Round-tripping is lossy beyond cent precision but exact within it.
func TestMoneyRoundTrip(t *testing.T) {
	for _, amount := range []float64{0, 0.01, 1.5, 19.99, 100, 12345.67} {
		assert.Equal(t, amount, CentsToAmount(AmountToCents(amount)))
	}
	assert.Equal(t, 20.00, CentsToAmount(AmountToCents(19.999)))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "20.00", FormatAmount(2000))
	assert.Equal(t, "0.05", FormatAmount(5))
	assert.Equal(t, "-12.34", FormatAmount(-1234))
}
