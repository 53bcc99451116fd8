package backend

import (
	"context"
	"fmt"
	"log/slog"

	"paisa/internal/amqp"
	"paisa/internal/ledger"
	"paisa/internal/memory"
	"paisa/internal/mongodb"
	"paisa/internal/services"
	"paisa/internal/storage"
)

// Factory creates backends based on configuration
type Factory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// CreateBackend builds the store for the configured type, wires the optional
// AMQP publisher, and returns both behind a TransactionService.
func (f *Factory) CreateBackend(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, storeCleanup, err := f.createStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var publisher services.EventPublisher
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without backup events", "error", err)
		} else {
			publisher = amqpClient
			f.logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	cleanup := func() error {
		var firstErr error
		if amqpClient != nil {
			firstErr = amqpClient.Close()
		}
		if storeCleanup != nil {
			if err := storeCleanup(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	f.logger.Info("Initialized backend",
		"type", cfg.Type.String(),
		"amqp_enabled", publisher != nil)

	return &Result{
		Store:   store,
		Service: services.NewTransactionService(store, publisher),
		Cleanup: cleanup,
	}, nil
}

func (f *Factory) createStore(ctx context.Context, cfg Config) (ledger.Store, CleanupFunc, error) {
	switch cfg.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite store", "db_path", cfg.SQLiteDBPath)
		return repo, repo.Close, nil

	case MongoBackend:
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize Mongo store: %w", err)
		}
		store := mongodb.NewStore(client, cfg.MongoDB)
		f.logger.Info("Initialized Mongo store", "db", cfg.MongoDB)
		return store, func() error {
			return store.Close(context.Background())
		}, nil

	case MemoryBackend:
		f.logger.Info("Initialized in-memory store")
		return memory.NewStore(), nil, nil

	default:
		return nil, nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
