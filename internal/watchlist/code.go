package watchlist

import (
	"crypto/rand"
	"strings"
)

// CodeLength is the length of a sync code.
const CodeLength = 6

// codeAlphabet has 32 symbols, so a random byte masked to 5 bits picks one
// uniformly.  0/O and 1/I are left out; codes are read aloud and retyped.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewCode returns a random sync code.
func NewCode() (string, error) {
	var buf [CodeLength]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[b&31]
	}
	return string(buf[:]), nil
}

// NormalizeCode upper-cases and trims a user supplied code and checks its
// shape.
func NormalizeCode(s string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if len(code) != CodeLength {
		return "", ErrInvalidCode
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(codeAlphabet, code[i]) < 0 {
			return "", ErrInvalidCode
		}
	}
	return code, nil
}
