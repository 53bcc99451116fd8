package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"paisa/internal/core"
	"paisa/internal/ledger"
)

func validTx(category string, at time.Time) core.Transaction {
	return core.Transaction{
		Amount:    core.Money{Cents: 500},
		Category:  category,
		Mode:      core.ModeCash,
		Type:      core.TypeExpense,
		CreatedAt: at,
	}
}

func TestAppendAssignsID(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	id, err := s.Append(ctx, validTx("Travel", time.Now()))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if id == "" {
		t.Fatalf("expected assigned id")
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	bad := validTx("Travel", time.Now())
	bad.Amount.Cents = 0

	if _, err := s.Append(ctx, bad); !errors.Is(err, core.ErrMissingAmount) {
		t.Fatalf("expected missing amount error, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("store must stay empty after rejected append")
	}
}

func TestListAllNewestFirst(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	for i, cat := range []string{"old", "mid", "new"} {
		if _, err := s.Append(ctx, validTx(cat, base.AddDate(0, 0, i))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	txs, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(txs) != 3 || txs[0].Category != "new" || txs[2].Category != "old" {
		t.Fatalf("unexpected order: %+v", txs)
	}
}

func TestDeleteByID(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	id, err := s.Append(ctx, validTx("Travel", time.Now()))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	keep, err := s.Append(ctx, validTx("Bills", time.Now()))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := s.DeleteByID(ctx, id); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}

	txs, _ := s.ListAll(ctx)
	if len(txs) != 1 || txs[0].ID != keep {
		t.Fatalf("expected only %s to survive, got %+v", keep, txs)
	}

	if err := s.DeleteByID(ctx, "missing"); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("failed delete must not change the store")
	}
}
