package amqp

import (
	"testing"
	"time"
)

func TestNewCreatedMessage(t *testing.T) {
	msg := NewCreatedMessage("abc-123")

	if msg.Event != EventTransactionCreated {
		t.Errorf("Event = %v, want %v", msg.Event, EventTransactionCreated)
	}
	if msg.ID != "abc-123" {
		t.Errorf("ID = %v, want abc-123", msg.ID)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestNewDeletedMessage(t *testing.T) {
	msg := NewDeletedMessage("abc-123")

	if msg.Event != EventTransactionDeleted {
		t.Errorf("Event = %v, want %v", msg.Event, EventTransactionDeleted)
	}
	if msg.ID != "abc-123" {
		t.Errorf("ID = %v, want abc-123", msg.ID)
	}
}

func TestSyncMessage_JSON(t *testing.T) {
	timestamp := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &SyncMessage{
		Event:     EventTransactionCreated,
		ID:        "id-42",
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsedMsg, err := SyncMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("SyncMessageFromJSON() error = %v", err)
	}

	if parsedMsg.Event != msg.Event {
		t.Errorf("Parsed Event = %v, want %v", parsedMsg.Event, msg.Event)
	}
	if parsedMsg.ID != msg.ID {
		t.Errorf("Parsed ID = %v, want %v", parsedMsg.ID, msg.ID)
	}
	if !parsedMsg.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsedMsg.Timestamp, msg.Timestamp)
	}
}

func TestSyncMessage_InvalidJSON(t *testing.T) {
	if _, err := SyncMessageFromJSON([]byte(`{"id": 42`)); err == nil {
		t.Error("SyncMessageFromJSON() should fail with invalid JSON")
	}
}
