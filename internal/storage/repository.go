package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"paisa/internal/core"
	"paisa/internal/ledger"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements ledger.TransactionWriter
func (r *SQLiteRepository) Append(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}

	id := tx.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := tx.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	row, err := r.queries.CreateTransaction(ctx, CreateTransactionParams{
		ID:          id,
		AmountCents: tx.Amount.Cents,
		Category:    tx.Category,
		Mode:        string(tx.Mode),
		Type:        string(tx.Type),
		Remarks:     tx.Remarks,
		CreatedAt:   createdAt.UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", row.ID,
		"amount_cents", row.AmountCents,
		"category", row.Category,
		"mode", row.Mode,
		"type", row.Type)

	return row.ID, nil
}

// ListAll implements ledger.TransactionLister
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	txs := make([]core.Transaction, len(rows))
	for i, row := range rows {
		txs[i] = rowToTransaction(row)
	}
	return txs, nil
}

// DeleteByID implements ledger.TransactionDeleter
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	affected, err := r.queries.DeleteTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if affected == 0 {
		return ledger.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted from SQLite", "id", id)
	return nil
}

// PendingSync returns transactions that still need a spreadsheet backup row.
func (r *SQLiteRepository) PendingSync(ctx context.Context, limit int) ([]core.Transaction, error) {
	rows, err := r.queries.GetPendingSyncTransactions(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("get pending sync transactions: %w", err)
	}

	txs := make([]core.Transaction, len(rows))
	for i, row := range rows {
		txs[i] = rowToTransaction(row)
	}
	return txs, nil
}

// MarkSynced marks a transaction as successfully backed up.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	if err := r.queries.MarkTransactionSynced(ctx, id); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	return nil
}

// MarkSyncError flags a transaction whose backup attempt failed.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	if err := r.queries.MarkTransactionSyncError(ctx, id); err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}
	return nil
}

// Get retrieves a single transaction by id.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (core.Transaction, error) {
	row, err := r.queries.GetTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return rowToTransaction(row), nil
}

func rowToTransaction(row TransactionRow) core.Transaction {
	return core.Transaction{
		ID:        row.ID,
		Amount:    core.Money{Cents: row.AmountCents},
		Category:  row.Category,
		Mode:      core.Mode(row.Mode),
		Type:      core.TxType(row.Type),
		Remarks:   row.Remarks,
		CreatedAt: row.CreatedAt,
	}
}
