package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"paisa/internal/amqp"
	"paisa/internal/core"
)

type fakeLedger struct {
	txs map[string]core.Transaction

	pending      []core.Transaction
	pendingLimit int

	synced     []string
	syncErrors []string
	getErr     error
}

func (f *fakeLedger) Get(ctx context.Context, id string) (core.Transaction, error) {
	if f.getErr != nil {
		return core.Transaction{}, f.getErr
	}
	tx, ok := f.txs[id]
	if !ok {
		return core.Transaction{}, errors.New("not found")
	}
	return tx, nil
}

func (f *fakeLedger) PendingSync(ctx context.Context, limit int) ([]core.Transaction, error) {
	f.pendingLimit = limit
	if limit < len(f.pending) {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeLedger) MarkSynced(ctx context.Context, id string) error {
	f.synced = append(f.synced, id)
	return nil
}

func (f *fakeLedger) MarkSyncError(ctx context.Context, id string) error {
	f.syncErrors = append(f.syncErrors, id)
	return nil
}

type fakeBackup struct {
	appended  []string
	flagged   []string
	appendErr error
}

func (f *fakeBackup) AppendTransaction(ctx context.Context, tx core.Transaction) (string, error) {
	if f.appendErr != nil {
		return "", f.appendErr
	}
	f.appended = append(f.appended, tx.ID)
	return "Transactions!A2:H2", nil
}

func (f *fakeBackup) FlagDeleted(ctx context.Context, id string) error {
	f.flagged = append(f.flagged, id)
	return nil
}

func testTx(id string) core.Transaction {
	return core.Transaction{
		ID:        id,
		Amount:    core.Money{Cents: 12500},
		Category:  "Food Essential",
		Mode:      core.ModeCash,
		Type:      core.TypeExpense,
		CreatedAt: time.Now().UTC(),
	}
}

func TestHandleMessageCreated(t *testing.T) {
	ledger := &fakeLedger{txs: map[string]core.Transaction{"tx-1": testTx("tx-1")}}
	backup := &fakeBackup{}
	w := NewSyncWorker(ledger, backup, 10)

	msg := &amqp.SyncMessage{Event: amqp.EventTransactionCreated, ID: "tx-1"}
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	if len(backup.appended) != 1 || backup.appended[0] != "tx-1" {
		t.Errorf("expected tx-1 appended, got %v", backup.appended)
	}
	if len(ledger.synced) != 1 || ledger.synced[0] != "tx-1" {
		t.Errorf("expected tx-1 marked synced, got %v", ledger.synced)
	}
}

func TestHandleMessageDeleted(t *testing.T) {
	ledger := &fakeLedger{}
	backup := &fakeBackup{}
	w := NewSyncWorker(ledger, backup, 10)

	msg := &amqp.SyncMessage{Event: amqp.EventTransactionDeleted, ID: "tx-2"}
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	if len(backup.flagged) != 1 || backup.flagged[0] != "tx-2" {
		t.Errorf("expected tx-2 flagged deleted, got %v", backup.flagged)
	}
}

func TestHandleMessageUnknownEvent(t *testing.T) {
	ledger := &fakeLedger{}
	backup := &fakeBackup{}
	w := NewSyncWorker(ledger, backup, 10)

	msg := &amqp.SyncMessage{Event: "transaction.renamed", ID: "tx-3"}
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("unknown events should be dropped, got error: %v", err)
	}

	if len(backup.appended) != 0 || len(backup.flagged) != 0 {
		t.Error("unknown event should not touch the backup")
	}
}

func TestHandleMessageAppendFailure(t *testing.T) {
	ledger := &fakeLedger{txs: map[string]core.Transaction{"tx-1": testTx("tx-1")}}
	backup := &fakeBackup{appendErr: errors.New("quota exceeded")}
	w := NewSyncWorker(ledger, backup, 10)

	msg := &amqp.SyncMessage{Event: amqp.EventTransactionCreated, ID: "tx-1"}
	if err := w.HandleMessage(context.Background(), msg); err == nil {
		t.Fatal("expected error when backup append fails")
	}

	if len(ledger.syncErrors) != 1 || ledger.syncErrors[0] != "tx-1" {
		t.Errorf("expected tx-1 marked sync_error, got %v", ledger.syncErrors)
	}
	if len(ledger.synced) != 0 {
		t.Errorf("failed append must not be marked synced, got %v", ledger.synced)
	}
}

func TestProcessPending(t *testing.T) {
	ledger := &fakeLedger{pending: []core.Transaction{testTx("tx-1"), testTx("tx-2")}}
	backup := &fakeBackup{}
	w := NewSyncWorker(ledger, backup, 5)

	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("ProcessPending: %v", err)
	}

	if ledger.pendingLimit != 5 {
		t.Errorf("expected batch size 5, got %d", ledger.pendingLimit)
	}
	if len(backup.appended) != 2 {
		t.Errorf("expected 2 transactions backed up, got %d", len(backup.appended))
	}
	if len(ledger.synced) != 2 {
		t.Errorf("expected 2 transactions marked synced, got %d", len(ledger.synced))
	}
}

func TestProcessPendingEmpty(t *testing.T) {
	ledger := &fakeLedger{}
	backup := &fakeBackup{}
	w := NewSyncWorker(ledger, backup, 5)

	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("ProcessPending with nothing pending: %v", err)
	}
	if len(backup.appended) != 0 {
		t.Errorf("nothing pending, nothing should be appended: %v", backup.appended)
	}
}

func TestProcessPendingContinuesAfterFailure(t *testing.T) {
	ledger := &fakeLedger{pending: []core.Transaction{testTx("tx-1"), testTx("tx-2")}}
	backup := &fakeBackup{appendErr: errors.New("backend down")}
	w := NewSyncWorker(ledger, backup, 5)

	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("ProcessPending should swallow per-row failures: %v", err)
	}

	if len(ledger.syncErrors) != 2 {
		t.Errorf("expected both rows marked sync_error, got %v", ledger.syncErrors)
	}
}

func TestStartupSyncCheckUsesLargerBatch(t *testing.T) {
	ledger := &fakeLedger{pending: []core.Transaction{testTx("tx-1")}}
	backup := &fakeBackup{}
	w := NewSyncWorker(ledger, backup, 10)

	if err := w.StartupSyncCheck(context.Background()); err != nil {
		t.Fatalf("StartupSyncCheck: %v", err)
	}

	if ledger.pendingLimit != 50 {
		t.Errorf("startup check should drain a 5x batch, got limit %d", ledger.pendingLimit)
	}
	if len(backup.appended) != 1 {
		t.Errorf("expected 1 transaction backed up, got %d", len(backup.appended))
	}
}
