package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12", 1200, true},
		{"12.3", 1230, true},
		{"12.345", 1235, true}, // half-up on the third decimal
		{"12.344", 1234, true},
		{"0.01", 1, true},
		{" 7 ", 700, true},
		{"", 0, false},
		{"0", 0, false},
		{"0.00", 0, false},
		{"-5", 0, false},
		{"+5", 0, false},
		{"1.2.3", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q: got (%d, %v), want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q: expected error, got %d", tc.in, got)
		}
	}
}

func TestRupees(t *testing.T) {
	if got := (Money{Cents: 1234}).Rupees(); got != 12.34 {
		t.Fatalf("rupees = %v, want 12.34", got)
	}
}
