package utils

import (
	"testing"
	"time"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"100", 100, true},
		{"99.5", 99.5, true},
		{"-12", -12, true},
		{"$1,200.50", 1200.50, true},
		{"€45", 45, true},
		{"£45", 45, true},
		{"  7  ", 7, true},
		{"1,000,000", 1000000, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseNumber(%q) ok = %t, want %t", tt.in, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in    string
		year  int
		month time.Month
		day   int
		ok    bool
	}{
		{"2026-07-10", 2026, time.July, 10, true},
		{"2026-07-10 14:30:00", 2026, time.July, 10, true},
		{"2026-07-10T14:30:00Z", 2026, time.July, 10, true},
		{"07/10/2026", 2026, time.July, 10, true},
		{"2026/07/10", 2026, time.July, 10, true},
		{"10-Jul-2026", 2026, time.July, 10, true},
		{"Jul 10, 2026", 2026, time.July, 10, true},
		{"", 0, 0, 0, false},
		{"not a date", 0, 0, 0, false},
		{"2026-13-45", 0, 0, 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseDate(%q) ok = %t, want %t", tt.in, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if got.Year() != tt.year || got.Month() != tt.month || got.Day() != tt.day {
			t.Errorf("ParseDate(%q) = %v, want %d-%d-%d", tt.in, got, tt.year, tt.month, tt.day)
		}
	}
}
