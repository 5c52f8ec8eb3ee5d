// Package passgen generates random passwords from selectable character
// classes using crypto/rand.
package passgen

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const (
	upper     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lower     = "abcdefghijklmnopqrstuvwxyz"
	digits    = "0123456789"
	symbols   = "!@#$%^&*()-_=+[]{}|;:,.<>?"
	ambiguous = "0O1lI"
)

// ErrInvalidLength is returned when Length cannot hold one character of
// every selected class.
var ErrInvalidLength = errors.New("password length too short")

// Options selects the password length and character classes. When no class
// is selected lowercase letters are used.
type Options struct {
	Length           int
	Upper            bool
	Lower            bool
	Digits           bool
	Symbols          bool
	ExcludeAmbiguous bool
}

// DefaultOptions returns 20 characters drawn from every class.
func DefaultOptions() Options {
	return Options{Length: 20, Upper: true, Lower: true, Digits: true, Symbols: true}
}

// Generate returns a password that contains at least one character of each
// selected class.
func Generate(o Options) (string, error) {
	classes := o.classes()
	if o.Length < 1 || o.Length < len(classes) {
		return "", ErrInvalidLength
	}

	charset := []rune(strings.Join(classes, ""))
	size := big.NewInt(int64(len(charset)))
	buf := make([]rune, o.Length)

	for {
		for i := range buf {
			n, err := rand.Int(rand.Reader, size)
			if err != nil {
				return "", err
			}
			buf[i] = charset[n.Int64()]
		}
		pw := string(buf)
		if covers(pw, classes) {
			return pw, nil
		}
	}
}

// classes returns the character sets to draw from, with ambiguous
// characters removed if requested.
func (o Options) classes() []string {
	var out []string
	for _, c := range []struct {
		on  bool
		set string
	}{
		{o.Upper, upper},
		{o.Lower, lower},
		{o.Digits, digits},
		{o.Symbols, symbols},
	} {
		if c.on {
			out = append(out, c.set)
		}
	}
	if len(out) == 0 {
		out = append(out, lower)
	}
	if o.ExcludeAmbiguous {
		for i, set := range out {
			out[i] = strings.Map(func(r rune) rune {
				if strings.ContainsRune(ambiguous, r) {
					return -1
				}
				return r
			}, set)
		}
	}
	return out
}

func covers(pw string, classes []string) bool {
	for _, set := range classes {
		if !strings.ContainsAny(pw, set) {
			return false
		}
	}
	return true
}
