package core

import (
	"errors"
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Amount:    Money{Cents: 100},
		Category:  "Travel",
		Mode:      ModeCash,
		Type:      TypeExpense,
		CreatedAt: time.Now(),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		mut  func(Transaction) Transaction
		want error
	}{
		{"zero amount", func(e Transaction) Transaction { e.Amount.Cents = 0; return e }, ErrMissingAmount},
		{"negative amount", func(e Transaction) Transaction { e.Amount.Cents = -5; return e }, ErrMissingAmount},
		{"empty category", func(e Transaction) Transaction { e.Category = ""; return e }, ErrMissingCategory},
		{"blank category", func(e Transaction) Transaction { e.Category = "   "; return e }, ErrMissingCategory},
		{"bad mode", func(e Transaction) Transaction { e.Mode = "cheque"; return e }, ErrInvalidMode},
		{"bad type", func(e Transaction) Transaction { e.Type = "transfer"; return e }, ErrInvalidType},
	}
	for _, tc := range cases {
		err := tc.mut(good).Validate()
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field == "" {
			t.Fatalf("%s: expected field-carrying validation error, got %v", tc.name, err)
		}
	}
}

func TestUnclassifiedSentinel(t *testing.T) {
	e := Transaction{Category: CategoryUnknown}
	if !e.Unclassified() {
		t.Fatalf("expected unclassified")
	}
	e.Category = "Travel"
	if e.Unclassified() {
		t.Fatalf("unexpected unclassified")
	}
}

func TestDateKeyIsUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	e := Transaction{CreatedAt: time.Date(2026, 3, 1, 2, 0, 0, 0, ist)}
	if got := e.DateKey(); got != "2026-02-28" {
		t.Fatalf("date key = %s, want 2026-02-28", got)
	}
}
