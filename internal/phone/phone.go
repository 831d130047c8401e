// Package phone canonicalizes Kenyan mobile numbers into the single
// international form used as the account key everywhere else.
package phone

import (
	"errors"
	"strings"
)

const (
	countryCode = "254"
	prefix      = "+" + countryCode
)

// ErrInvalid signals input that matches none of the accepted formats.
var ErrInvalid = errors.New("invalid phone format")

// Normalize converts raw input into canonical +254XXXXXXXXX form.
// Accepted inputs: "+254712345678", "254712345678", "0712345678",
// "712345678". Anything else is rejected.
func Normalize(raw string) (string, error) {
	p := strings.Join(strings.Fields(raw), "")
	if p == "" {
		return "", ErrInvalid
	}

	switch {
	case strings.HasPrefix(p, prefix):
		return p, nil
	case strings.HasPrefix(p, countryCode):
		return "+" + p, nil
	case strings.HasPrefix(p, "07"):
		return prefix + p[1:], nil
	case strings.HasPrefix(p, "7"):
		return prefix + p, nil
	}
	return "", ErrInvalid
}

// IsCanonical reports whether s is already in the stored form.
func IsCanonical(s string) bool {
	normalized, err := Normalize(s)
	return err == nil && normalized == s
}
