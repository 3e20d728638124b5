package validation

import (
	"strings"
	"testing"
)

type sample struct {
	Name  string   `validate:"required"`
	Date  string   `validate:"required,datetime=2006-01-02"`
	Limit int      `validate:"min=1,max=20"`
	Films []string `validate:"max=2"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{"valid", sample{Name: "x", Date: "2026-02-01", Limit: 5}, ""},
		{"missing name", sample{Date: "2026-02-01", Limit: 5}, "sample.Name is required"},
		{"bad date", sample{Name: "x", Date: "01/02/2026", Limit: 5}, "sample.Date must match 2006-01-02"},
		{"limit too high", sample{Name: "x", Date: "2026-02-01", Limit: 21}, "sample.Limit must be at most 20"},
		{"too many films", sample{Name: "x", Date: "2026-02-01", Limit: 1, Films: []string{"a", "b", "c"}}, "sample.Films must be at most 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Struct() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Struct() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidator_Singleton(t *testing.T) {
	if Validator() != Validator() {
		t.Fatal("Validator() returned different instances")
	}
}
