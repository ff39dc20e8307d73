package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParsePeriod_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want Period
	}{
		{"06:00", 360},
		{"00:30", 30},
		{"23:59", 23*60 + 59},
		{" 01:15 ", 75},
	}
	for _, c := range cases {
		got, err := ParsePeriod(c.in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%q: want %d minutes, got %d", c.in, c.want, got)
		}
	}
}

func TestParsePeriod_Invalid(t *testing.T) {
	for _, in := range []string{"00:00", "24:00", "12:60", "abc", "", "90", "1h30m"} {
		if _, err := ParsePeriod(in); !errors.Is(err, ErrInvalidPeriod) {
			t.Fatalf("%q: want ErrInvalidPeriod, got %v", in, err)
		}
	}
}

func TestPeriod_RoundTrip(t *testing.T) {
	p, err := ParsePeriod("06:30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.String() != "06:30" {
		t.Fatalf("want 06:30, got %s", p.String())
	}
	if p.Duration() != 6*time.Hour+30*time.Minute {
		t.Fatalf("want 6h30m, got %s", p.Duration())
	}
}
