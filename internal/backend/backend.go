package backend

import (
	"fmt"

	"paisa/internal/config"
	"paisa/internal/ledger"
	"paisa/internal/services"
)

// Type identifies a transaction store implementation.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MongoBackend  Type = "mongo"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MongoBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{SQLiteBackend, MongoBackend, MemoryBackend}
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result bundles the wired store, the service orchestrating writes over it,
// and the cleanup to run at shutdown.
type Result struct {
	Store   ledger.Store
	Service *services.TransactionService
	Cleanup CleanupFunc
}

// Config holds what the factory needs to build a backend.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Mongo specific
	MongoURI string
	MongoDB  string

	// AMQP event publishing (optional for every backend)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:         backendType,
		SQLiteDBPath: appConfig.SQLiteDBPath,
		MongoURI:     appConfig.MongoURI,
		MongoDB:      appConfig.MongoDB,
		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case MongoBackend:
		if c.MongoURI == "" {
			return fmt.Errorf("Mongo URI is required for mongo backend")
		}
		if c.MongoDB == "" {
			return fmt.Errorf("Mongo database name is required for mongo backend")
		}
	case MemoryBackend:
		// nothing to validate
	}

	return nil
}
