package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCardID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "04a1b2c3", "04A1B2C3"},
		{"colon separated", "04:a1:b2:c3", "04A1B2C3"},
		{"spaces", "04A1 B2C3", "04A1B2C3"},
		{"already canonical", "04A1B2C3", "04A1B2C3"},
		{"non-hex dropped", "04-a1:zz b2", "04A1B2"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeCardID(tc.in))
		})
	}
}

func TestFormatCardID(t *testing.T) {
	assert.Equal(t, "04A1 B2C3", FormatCardID("04a1b2c3"))
	assert.Equal(t, "04A1 B2C3 D4", FormatCardID("04a1b2c3d4"))
	assert.Equal(t, "04A1", FormatCardID("04a1"))
	assert.Equal(t, "", FormatCardID(""))
}

func TestFormatCardIDIdempotent(t *testing.T) {
	for _, in := range []string{"04a1b2c3", "04:A1:B2:C3", "04A1 B2C3 D4E5"} {
		once := FormatCardID(in)
		assert.Equal(t, once, FormatCardID(once))
	}
}
