package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"paisa/internal/core"
	"paisa/internal/ledger"
)

// EventPublisher publishes transaction lifecycle events for the backup
// worker. *amqp.Client satisfies it.
type EventPublisher interface {
	PublishTransactionCreated(ctx context.Context, id string) error
	PublishTransactionDeleted(ctx context.Context, id string) error
}

// TransactionService orchestrates writes across the store and the event
// queue. The store is the source of truth: a publish failure is logged and
// the request still succeeds.
type TransactionService struct {
	store     ledger.Store
	publisher EventPublisher
}

func NewTransactionService(store ledger.Store, publisher EventPublisher) *TransactionService {
	return &TransactionService{
		store:     store,
		publisher: publisher,
	}
}

// Create validates and saves a transaction, then publishes a created event.
func (s *TransactionService) Create(ctx context.Context, tx core.Transaction) (string, error) {
	id, err := s.store.Append(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("save transaction: %w", err)
	}

	if s.publisher == nil {
		return id, nil
	}
	if err := s.publisher.PublishTransactionCreated(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish created event",
			"id", id, "error", err)
		// Transaction is saved locally; the periodic sweep backstops the backup.
	}

	return id, nil
}

// List returns every transaction newest-first.
func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	txs, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Delete removes a transaction and publishes a deleted event. The caller
// gets ledger.ErrNotFound untouched so it can map it to its own surface.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}

	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.PublishTransactionDeleted(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish deleted event",
			"id", id, "error", err)
	}

	return nil
}

// Close releases the store and publisher when they hold resources.
func (s *TransactionService) Close() error {
	var errs []error

	if closer, ok := s.store.(io.Closer); ok && closer != nil {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if closer, ok := s.publisher.(io.Closer); ok && closer != nil {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close transaction service: %v", errs)
	}
	return nil
}
