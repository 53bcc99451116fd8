package ledger

import (
	"context"
	"errors"

	"paisa/internal/core"
)

// ErrNotFound is returned by DeleteByID when no transaction carries the
// given id. The store is left untouched in that case.
var ErrNotFound = errors.New("transaction not found")

// Ports for the transaction store.
type (
	TransactionWriter interface {
		// Append persists a validated transaction and returns the id the
		// store assigned to it.
		Append(ctx context.Context, tx core.Transaction) (id string, err error)
	}

	TransactionLister interface {
		// ListAll returns every transaction ordered by CreatedAt descending.
		ListAll(ctx context.Context) ([]core.Transaction, error)
	}

	TransactionDeleter interface {
		DeleteByID(ctx context.Context, id string) error
	}

	// Store combines the three ports; every backend implements it.
	Store interface {
		TransactionWriter
		TransactionLister
		TransactionDeleter
	}
)
