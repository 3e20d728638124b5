package festival

import (
	"errors"
	"reflect"
	"testing"
)

func TestCalendar_Days(t *testing.T) {
	tests := []struct {
		name string
		cal  Calendar
		want int
	}{
		{"default edition", Default().Calendar, 8},
		{"single day", Calendar{Start: "2026-03-01", End: "2026-03-01"}, 1},
		{"across month end", Calendar{Start: "2026-02-27", End: "2026-03-02"}, 4},
		{"reversed", Calendar{Start: "2026-03-02", End: "2026-03-01"}, 0},
		{"bad date", Calendar{Start: "30/01/2026", End: "2026-02-06"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cal.Days(); got != tt.want {
				t.Errorf("Days() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalendar_Dates(t *testing.T) {
	cal := Calendar{Start: "2026-01-30", End: "2026-02-02"}
	want := []string{"2026-01-30", "2026-01-31", "2026-02-01", "2026-02-02"}
	if got := cal.Dates(); !reflect.DeepEqual(got, want) {
		t.Errorf("Dates() = %v, want %v", got, want)
	}
}

func TestCalendar_Label(t *testing.T) {
	cal := Default().Calendar
	tests := []struct {
		date   string
		want   string
		wantOK bool
	}{
		{"2026-01-30", "Day 1 - Friday", true},
		{"2026-02-03", "Day 5 - Tuesday", true},
		{"2026-02-06", "Day 8 - Friday", true},
		{"2026-02-07", "", false},
		{"2026-01-29", "", false},
		{"tomorrow", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, ok := cal.Label(tt.date)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Label(%q) = (%q, %v), want (%q, %v)", tt.date, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCalendar_Validate(t *testing.T) {
	if err := Default().Calendar.Validate(); err != nil {
		t.Fatalf("Validate() on default calendar: %v", err)
	}
	err := Calendar{Start: "2026-02-06", End: "2026-01-30"}.Validate()
	if !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("Validate() = %v, want ErrEndBeforeStart", err)
	}
	if err := (Calendar{Start: "2026-02-30", End: "2026-03-01"}).Validate(); err == nil {
		t.Error("Validate() accepted an impossible date")
	}
}
