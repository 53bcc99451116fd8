// Package worker reconciles the local ledger with the spreadsheet backup.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"paisa/internal/amqp"
	"paisa/internal/core"
	"paisa/internal/sheets"
)

// Ledger is the slice of the storage layer the worker needs. The SQLite
// repository satisfies it.
type Ledger interface {
	Get(ctx context.Context, id string) (core.Transaction, error)
	PendingSync(ctx context.Context, limit int) ([]core.Transaction, error)
	MarkSynced(ctx context.Context, id string) error
	MarkSyncError(ctx context.Context, id string) error
}

// SyncWorker consumes transaction events and mirrors them into the backup
// spreadsheet. A periodic pending sweep covers messages the broker lost.
type SyncWorker struct {
	storage   Ledger
	backup    sheets.Backup
	batchSize int
}

func NewSyncWorker(storage Ledger, backup sheets.Backup, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		backup:    backup,
		batchSize: batchSize,
	}
}

// HandleMessage processes a single sync message from AMQP.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.SyncMessage) error {
	switch msg.Event {
	case amqp.EventTransactionCreated:
		return w.handleCreated(ctx, msg.ID)
	case amqp.EventTransactionDeleted:
		return w.handleDeleted(ctx, msg.ID)
	default:
		slog.WarnContext(ctx, "Unknown sync event, dropping", "event", msg.Event, "id", msg.ID)
		return nil
	}
}

func (w *SyncWorker) handleCreated(ctx context.Context, id string) error {
	tx, err := w.storage.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	return w.backupTransaction(ctx, tx)
}

func (w *SyncWorker) handleDeleted(ctx context.Context, id string) error {
	if err := w.backup.FlagDeleted(ctx, id); err != nil {
		return fmt.Errorf("flag transaction deleted in backup: %w", err)
	}

	slog.InfoContext(ctx, "Flagged transaction deleted in backup", "id", id)
	return nil
}

// ProcessPending backs up transactions that have no backup row yet. This is
// the safety net for lost AMQP messages.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.PendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	for _, tx := range pending {
		if err := w.backupTransaction(ctx, tx); err != nil {
			slog.ErrorContext(ctx, "Failed to back up transaction", "id", tx.ID, "error", err)
		}
	}

	return nil
}

// StartupSyncCheck drains a larger pending batch once at worker startup to
// recover from downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.PendingSync(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending transactions for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending transactions found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending transactions on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0
	for _, tx := range pending {
		if err := w.backupTransaction(ctx, tx); err != nil {
			slog.ErrorContext(ctx, "Failed to back up transaction during startup",
				"id", tx.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

func (w *SyncWorker) backupTransaction(ctx context.Context, tx core.Transaction) error {
	ref, err := w.backup.AppendTransaction(ctx, tx)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, tx.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", tx.ID, "error", markErr)
		}
		return fmt.Errorf("append to backup sheet: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, tx.ID); err != nil {
		// The backup row exists; only the local flag is stale.
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", tx.ID, "error", err)
	}

	slog.InfoContext(ctx, "Backed up transaction",
		"id", tx.ID,
		"sheet_ref", ref,
		"amount_cents", tx.Amount.Cents)

	return nil
}
