package catalog

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mahakavi", "MAHAKAVI"},
		{"  SOUND   of\tFalling ", "SOUND OF FALLING"},
		{"Dr. Rajkumar: Hero of Subalterns", "DR RAJKUMAR HERO OF SUBALTERNS"},
		{"Amélie", "AMELIE"},
		{"It's a Wonderful Life!", "ITS A WONDERFUL LIFE"},
		{"2046", "2046"},
		{"Shape-of-Momo", "SHAPEOFMOMO"},
		{"...", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewAliases(t *testing.T) {
	raw := map[string]string{
		"Sound of Falling (In die Sonne schauen)": "Sound of Falling",
	}
	raw[""] = "ignored"
	raw["empty"] = ""
	raw["MEMORIA."] = "Memoria"
	a := NewAliases(raw)
	if to, ok := a.Lookup("SOUND OF FALLING IN DIE SONNE SCHAUEN"); !ok || to != "Sound of Falling" {
		t.Errorf("Lookup() = (%q, %v)", to, ok)
	}
	if _, ok := a.Lookup("empty"); ok {
		t.Error("alias with empty target was kept")
	}
	if len(a) != 2 {
		t.Errorf("len(aliases) = %d, want 2", len(a))
	}
}

func TestNewAliases_CollisionIsDeterministic(t *testing.T) {
	for i := 0; i < 20; i++ {
		a := NewAliases(map[string]string{"Film A": "first", "film a!": "second"})
		if got := a["FILM A"]; got != "second" {
			t.Fatalf("collision winner = %q, want second", got)
		}
	}
}
