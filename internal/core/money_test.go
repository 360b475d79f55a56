package core

import "testing"

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		in  int64
		out string
	}{
		{0, "Rp0"},
		{500, "Rp500"},
		{15000, "Rp15.000"},
		{2000000, "Rp2.000.000"},
		{1234567890, "Rp1.234.567.890"},
		{-15000, "-Rp15.000"},
		{100_000_000_000, "Rp1,00e+11"}, // exponential at threshold
		{150_000_000_000, "Rp1,50e+11"},
	}
	for _, tc := range cases {
		if got := FormatRupiah(tc.in); got != tc.out {
			t.Fatalf("FormatRupiah(%d) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestAbbreviateRupiah(t *testing.T) {
	cases := []struct {
		in  int64
		out string
	}{
		{0, "Rp0"},
		{999, "Rp999"},
		{2000, "Rp2rb"},
		{15500, "Rp15,5rb"},
		{1_200_000, "Rp1,2jt"},
		{2_000_000, "Rp2jt"},
		{1_500_000_000, "Rp1,5M"},
		{-15500, "-Rp15,5rb"},
	}
	for _, tc := range cases {
		if got := AbbreviateRupiah(tc.in); got != tc.out {
			t.Fatalf("AbbreviateRupiah(%d) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestParseRupiah(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"15000", 15000, true},
		{"Rp15.000", 15000, true},
		{" 2.500 ", 2500, true},
		{"0", 0, false},
		{"-100", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseRupiah(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("ParseRupiah(%q) = %d, %v, want %d", tc.in, got, err, tc.out)
			}
		} else if err == nil {
			t.Fatalf("ParseRupiah(%q) expected error", tc.in)
		}
	}
}
