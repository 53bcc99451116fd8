package storage

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// TransactionRow mirrors the transactions table.
type TransactionRow struct {
	ID          string
	AmountCents int64
	Category    string
	Mode        string
	Type        string
	Remarks     string
	CreatedAt   time.Time
	SyncStatus  string
	SyncedAt    sql.NullTime
}

const createTransaction = `
INSERT INTO transactions (id, amount_cents, category, mode, type, remarks, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, amount_cents, category, mode, type, remarks, created_at, sync_status, synced_at
`

type CreateTransactionParams struct {
	ID          string
	AmountCents int64
	Category    string
	Mode        string
	Type        string
	Remarks     string
	CreatedAt   time.Time
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (TransactionRow, error) {
	row := q.db.QueryRowContext(ctx, createTransaction,
		arg.ID,
		arg.AmountCents,
		arg.Category,
		arg.Mode,
		arg.Type,
		arg.Remarks,
		arg.CreatedAt,
	)
	var t TransactionRow
	err := row.Scan(
		&t.ID,
		&t.AmountCents,
		&t.Category,
		&t.Mode,
		&t.Type,
		&t.Remarks,
		&t.CreatedAt,
		&t.SyncStatus,
		&t.SyncedAt,
	)
	return t, err
}

const listTransactions = `
SELECT id, amount_cents, category, mode, type, remarks, created_at, sync_status, synced_at
FROM transactions
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListTransactions(ctx context.Context) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TransactionRow
	for rows.Next() {
		var t TransactionRow
		if err := rows.Scan(
			&t.ID,
			&t.AmountCents,
			&t.Category,
			&t.Mode,
			&t.Type,
			&t.Remarks,
			&t.CreatedAt,
			&t.SyncStatus,
			&t.SyncedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getTransaction = `
SELECT id, amount_cents, category, mode, type, remarks, created_at, sync_status, synced_at
FROM transactions
WHERE id = ?
`

func (q *Queries) GetTransaction(ctx context.Context, id string) (TransactionRow, error) {
	row := q.db.QueryRowContext(ctx, getTransaction, id)
	var t TransactionRow
	err := row.Scan(
		&t.ID,
		&t.AmountCents,
		&t.Category,
		&t.Mode,
		&t.Type,
		&t.Remarks,
		&t.CreatedAt,
		&t.SyncStatus,
		&t.SyncedAt,
	)
	return t, err
}

const deleteTransaction = `
DELETE FROM transactions
WHERE id = ?
`

func (q *Queries) DeleteTransaction(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteTransaction, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getPendingSyncTransactions = `
SELECT id, amount_cents, category, mode, type, remarks, created_at, sync_status, synced_at
FROM transactions
WHERE sync_status = 'pending'
ORDER BY created_at ASC
LIMIT ?
`

func (q *Queries) GetPendingSyncTransactions(ctx context.Context, limit int64) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, getPendingSyncTransactions, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TransactionRow
	for rows.Next() {
		var t TransactionRow
		if err := rows.Scan(
			&t.ID,
			&t.AmountCents,
			&t.Category,
			&t.Mode,
			&t.Type,
			&t.Remarks,
			&t.CreatedAt,
			&t.SyncStatus,
			&t.SyncedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markTransactionSynced = `
UPDATE transactions
SET sync_status = 'synced', synced_at = ?
WHERE id = ?
`

func (q *Queries) MarkTransactionSynced(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, markTransactionSynced, time.Now().UTC(), id)
	return err
}

const markTransactionSyncError = `
UPDATE transactions
SET sync_status = 'error'
WHERE id = ?
`

func (q *Queries) MarkTransactionSyncError(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, markTransactionSyncError, id)
	return err
}
