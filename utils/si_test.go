package utils

import (
	"math"
	"testing"
)

func TestParseSI(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1000", 1000},
		{"1k", 1000},
		{"1K", 1000},
		{"4.7k", 4700},
		{"10m", 0.01},
		{"10M", 0.01},
		{"1meg", 1e6},
		{"1MEG", 1e6},
		{"2.2u", 2.2e-6},
		{"2.2µ", 2.2e-6},
		{"100n", 100e-9},
		{"33p", 33e-12},
		{"5f", 5e-15},
		{"1g", 1e9},
		{"2t", 2e12},
		{"1e-3", 1e-3},
		{"1.5e3k", 1.5e6},
		{" 12 ", 12},
		{"-3m", -3e-3},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSI(tt.in)
			if err != nil {
				t.Fatalf("ParseSI(%q) error: %v", tt.in, err)
			}
			if math.Abs(got-tt.want) > 1e-12*math.Abs(tt.want) {
				t.Errorf("ParseSI(%q) = %g, want %g", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSIInvalid(t *testing.T) {
	for _, in := range []string{"", "k", "abc", "1x", "1kk", "nan", "inf"} {
		if _, err := ParseSI(in); err == nil {
			t.Errorf("ParseSI(%q) expected error", in)
		}
	}
}

func TestFormatSI(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1000, "1k"},
		{4700, "4.7k"},
		{0.5, "500m"},
		{2.2e-6, "2.2µ"},
		{1e6, "1M"},
		{1, "1"},
		{-0.01, "-10m"},
	}
	for _, tt := range tests {
		if got := FormatSI(tt.in, 4); got != tt.want {
			t.Errorf("FormatSI(%g) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNetList(t *testing.T) {
	fields := FromLine("  R12  A GND 4.7k ")
	if len(fields) != 4 {
		t.Fatalf("fields = %v", fields)
	}
	if v, err := fields.ParseValue(3); err != nil || v != 4700 {
		t.Errorf("ParseValue = %g, %v", v, err)
	}
	if _, err := fields.ParseValue(9); err == nil {
		t.Errorf("expected missing field error")
	}
	if v, err := fields.ParseValueDefault(9, 7); err != nil || v != 7 {
		t.Errorf("ParseValueDefault = %g, %v", v, err)
	}
	if fields.IsValue(1) || !fields.IsValue(3) {
		t.Errorf("IsValue mismatch")
	}
	if fields.String() != "R12 A GND 4.7k" {
		t.Errorf("String = %q", fields.String())
	}
	if FormatFloat(2.2e-6) != "2.2e-06" {
		t.Errorf("FormatFloat = %q", FormatFloat(2.2e-6))
	}
}
