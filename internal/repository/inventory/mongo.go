package inventory

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tahmidrayat/dukandost/internal/domain/models"
)

const itemsCollection = "inventory_items"

// MongoStore implements Store on a MongoDB collection. Per-item atomicity
// comes from FindOneAndUpdate with $inc: the decrement and the returned
// document are a single operation on the server.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore builds a Store backed by the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(itemsCollection)}
}

// Get returns the ledger entry for name.
func (s *MongoStore) Get(ctx context.Context, name string) (models.InventoryItem, error) {
	var item models.InventoryItem
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.InventoryItem{}, ErrItemNotFound
	}
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("find inventory item %q: %w", name, err)
	}
	return item, nil
}

// DecrementStock atomically subtracts quantity and returns the post-update entry.
func (s *MongoStore) DecrementStock(ctx context.Context, name string, quantity int) (models.InventoryItem, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$inc": bson.M{"current_stock": -quantity}}

	var item models.InventoryItem
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"name": name}, update, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.InventoryItem{}, ErrItemNotFound
	}
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("decrement stock for %q: %w", name, err)
	}
	return item, nil
}

// List returns every ledger entry.
func (s *MongoStore) List(ctx context.Context) ([]models.InventoryItem, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.InventoryItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode inventory items: %w", err)
	}
	return items, nil
}

// Seed upserts the starting ledger; $setOnInsert keeps existing stock untouched.
func (s *MongoStore) Seed(ctx context.Context, items []models.InventoryItem) error {
	for _, item := range items {
		filter := bson.M{"name": item.Name}
		update := bson.M{"$setOnInsert": bson.M{
			"current_stock": item.CurrentStock,
			"reorder_point": item.ReorderPoint,
		}}
		opts := options.Update().SetUpsert(true)

		if _, err := s.coll.UpdateOne(ctx, filter, update, opts); err != nil {
			return fmt.Errorf("seed inventory item %q: %w", item.Name, err)
		}
	}
	return nil
}
