package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ModeCash   Mode = "cash"
	ModeOnline Mode = "online"

	TypeIncome  TxType = "income"
	TypeExpense TxType = "expense"
)

// CategoryUnknown marks an expense the user could not classify at entry
// time. Entries carrying it are surfaced in a dedicated dashboard section
// for later reclassification.
const CategoryUnknown = "Unknown expense"

type (
	// Mode is the payment mode a transaction belongs to. Each mode is
	// presented as its own "wallet".
	Mode string

	// TxType determines the sign of a transaction in balance computations.
	TxType string

	Money struct {
		Cents int64
	}

	// Transaction is the single persisted record type. The ID is assigned
	// by the store on creation and is stable for the entity's lifetime.
	Transaction struct {
		ID        string
		Amount    Money
		Category  string
		Mode      Mode
		Type      TxType
		Remarks   string
		CreatedAt time.Time
	}
)

var (
	ErrMissingAmount   = errors.New("missing amount")
	ErrMissingCategory = errors.New("missing category")
	ErrInvalidMode     = errors.New("invalid payment mode")
	ErrInvalidType     = errors.New("invalid transaction type")
)

// ValidationError reports which field made a creation request invalid.
// Creation callers get an explicit rejection instead of a silent no-op, so
// they can render it or assert on it.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid transaction: %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (m Mode) IsValid() bool {
	return m == ModeCash || m == ModeOnline
}

func (t TxType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Validate checks the creation invariants: amount and category are
// mandatory, mode and type come from their closed sets. The store never
// persists a transaction that fails here.
func (t Transaction) Validate() error {
	if t.Amount.Cents <= 0 {
		return &ValidationError{Field: "amount", Err: ErrMissingAmount}
	}
	if strings.TrimSpace(t.Category) == "" {
		return &ValidationError{Field: "category", Err: ErrMissingCategory}
	}
	if !t.Mode.IsValid() {
		return &ValidationError{Field: "mode", Err: ErrInvalidMode}
	}
	if !t.Type.IsValid() {
		return &ValidationError{Field: "type", Err: ErrInvalidType}
	}
	return nil
}

// Unclassified reports whether the transaction still carries the
// unknown-category sentinel.
func (t Transaction) Unclassified() bool {
	return t.Category == CategoryUnknown
}

// DateKey returns the UTC calendar date of the transaction in ISO form.
// All daily bucketing uses this key; lexicographic order on it is also
// chronological order.
func (t Transaction) DateKey() string {
	return t.CreatedAt.UTC().Format("2006-01-02")
}

// Categories is the closed set offered at input time. Stored values remain
// plain text, so historical entries may carry labels no longer listed here.
var Categories = []string{
	"Food Essential",
	CategoryUnknown,
	"Food Ultimate",
	"Gym",
	"Food order",
	"Cafeteria",
	"Travel",
	"General",
	"Allowance",
	"Bills",
	"Shopping",
	"Medicine",
	"Stationary",
}
