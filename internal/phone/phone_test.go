package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAcceptedFormats(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"international", "+254712345678"},
		{"country code without plus", "254712345678"},
		{"local trunk format", "0712345678"},
		{"bare subscriber", "712345678"},
		{"internal whitespace", " 0712 345 678 "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.in)
			require.NoError(t, err)
			assert.Equal(t, "+254712345678", got)
		})
	}
}

func TestNormalizeRejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too short digits", "12345"},
		{"landline trunk", "0204444444"},
		{"letters", "call-me"},
		{"other country code", "+15551234567"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(tc.in)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, IsCanonical("+254712345678"))
	assert.False(t, IsCanonical("0712345678"))
	assert.False(t, IsCanonical("garbage"))
}
