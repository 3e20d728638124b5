package watchlist

import (
	"errors"
	"strings"
	"testing"
)

func TestNewCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := NewCode()
		if err != nil {
			t.Fatalf("NewCode() error = %v", err)
		}
		if len(code) != CodeLength {
			t.Fatalf("len(%q) = %d, want %d", code, len(code), CodeLength)
		}
		if strings.ContainsAny(code, "01IO") {
			t.Fatalf("code %q contains an ambiguous symbol", code)
		}
		if _, err := NormalizeCode(code); err != nil {
			t.Fatalf("NormalizeCode(%q) rejected a generated code: %v", code, err)
		}
		seen[code] = true
	}
	if len(seen) < 190 {
		t.Errorf("only %d distinct codes in 200 draws", len(seen))
	}
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"ABC234", "ABC234", nil},
		{" abc234 ", "ABC234", nil},
		{"ABC23", "", ErrInvalidCode},
		{"ABC2345", "", ErrInvalidCode},
		{"ABC10O", "", ErrInvalidCode},
		{"ABC-23", "", ErrInvalidCode},
		{"", "", ErrInvalidCode},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeCode(tt.in)
			if got != tt.want || !errors.Is(err, tt.wantErr) {
				t.Errorf("NormalizeCode(%q) = (%q, %v), want (%q, %v)", tt.in, got, err, tt.want, tt.wantErr)
			}
		})
	}
}
