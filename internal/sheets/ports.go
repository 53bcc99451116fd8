package sheets

import (
	"context"

	"paisa/internal/core"
)

// Ports for the spreadsheet backup adapter.
type (
	// BackupWriter appends a transaction row to the backup ledger.
	BackupWriter interface {
		AppendTransaction(ctx context.Context, tx core.Transaction) (rowRef string, err error)
	}

	// BackupFlagger marks a previously backed-up transaction as deleted.
	// The backup keeps the row so the spreadsheet stays append-only.
	BackupFlagger interface {
		FlagDeleted(ctx context.Context, id string) error
	}

	// Backup combines both sides; the sync worker consumes it.
	Backup interface {
		BackupWriter
		BackupFlagger
	}
)
