// Package mongodb provides a MongoDB-backed transaction store.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"paisa/internal/core"
	"paisa/internal/ledger"
)

const transactionsCollection = "transactions"

// transactionDoc is the persisted document shape.
type transactionDoc struct {
	ID          string    `bson:"_id"`
	AmountCents int64     `bson:"amount_cents"`
	Category    string    `bson:"category"`
	Mode        string    `bson:"mode"`
	Type        string    `bson:"type"`
	Remarks     string    `bson:"remarks,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
}

// Connect establishes a verified connection to MongoDB.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	slog.InfoContext(ctx, "Connected to MongoDB")
	return client, nil
}

type Store struct {
	client *mongo.Client
	db     string
}

func NewStore(client *mongo.Client, db string) *Store {
	return &Store{client: client, db: db}
}

func (s *Store) collection() *mongo.Collection {
	return s.client.Database(s.db).Collection(transactionsCollection)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Append implements ledger.TransactionWriter
func (s *Store) Append(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	doc := transactionDoc{
		ID:          tx.ID,
		AmountCents: tx.Amount.Cents,
		Category:    tx.Category,
		Mode:        string(tx.Mode),
		Type:        string(tx.Type),
		Remarks:     tx.Remarks,
		CreatedAt:   tx.CreatedAt.UTC(),
	}
	if _, err := s.collection().InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to MongoDB",
		"id", tx.ID,
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category)

	return tx.ID, nil
}

// ListAll implements ledger.TransactionLister
func (s *Store) ListAll(ctx context.Context) ([]core.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []transactionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	txs := make([]core.Transaction, len(docs))
	for i, doc := range docs {
		txs[i] = core.Transaction{
			ID:        doc.ID,
			Amount:    core.Money{Cents: doc.AmountCents},
			Category:  doc.Category,
			Mode:      core.Mode(doc.Mode),
			Type:      core.TxType(doc.Type),
			Remarks:   doc.Remarks,
			CreatedAt: doc.CreatedAt,
		}
	}
	return txs, nil
}

// DeleteByID implements ledger.TransactionDeleter
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	result, err := s.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if result.DeletedCount == 0 {
		return ledger.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted from MongoDB", "id", id)
	return nil
}
