package amqp

import (
	"encoding/json"
	"time"
)

// Event kinds carried on the sync queue.
const (
	EventTransactionCreated = "transaction.created"
	EventTransactionDeleted = "transaction.deleted"
)

// SyncMessage is a lightweight pointer to a transaction the worker should
// reconcile with the backup spreadsheet. The worker fetches the full record
// from the store, so the message only carries identity.
type SyncMessage struct {
	Event     string    `json:"event"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewCreatedMessage builds a created event for the given transaction id.
func NewCreatedMessage(id string) *SyncMessage {
	return &SyncMessage{
		Event:     EventTransactionCreated,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// NewDeletedMessage builds a deleted event for the given transaction id.
func NewDeletedMessage(id string) *SyncMessage {
	return &SyncMessage{
		Event:     EventTransactionDeleted,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SyncMessageFromJSON creates a message from JSON bytes
func SyncMessageFromJSON(data []byte) (*SyncMessage, error) {
	var msg SyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
