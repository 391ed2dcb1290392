// Package inventory applies parsed sales to the stock ledger and decides when
// a low-stock alert is warranted.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tahmidrayat/dukandost/internal/domain/models"
	store "github.com/tahmidrayat/dukandost/internal/repository/inventory"
)

// ErrItemNotFound mirrors the store sentinel so callers match against one
// package.
var ErrItemNotFound = store.ErrItemNotFound

// ErrInvalidQuantity is returned for a negative quantity. A negative sale
// would silently increase stock; increases must go through Restock instead.
var ErrInvalidQuantity = errors.New("quantity must not be negative")

// ErrStorageFailure wraps any underlying store fault other than a missing
// item, so the reply composer can distinguish "unknown item" from "ledger
// unavailable".
var ErrStorageFailure = errors.New("inventory storage failure")

// Service owns the sale -> ledger transition.
type Service struct {
	store  store.Store
	logger *zap.Logger
}

// NewService wires an inventory service over the given store.
func NewService(s store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: s, logger: logger}
}

// ApplySale subtracts quantity from the item's stock and reports whether the
// new stock sits at or below the reorder point. The stock write is
// unconditional: an over-sale leaves negative stock, which is the signal the
// shopkeeper needs, not an error.
//
// The read-compute-write is atomic per item via Store.DecrementStock, so
// concurrent sales of the same item cannot lose updates.
func (s *Service) ApplySale(ctx context.Context, itemName string, quantity int) (models.StockUpdate, error) {
	if quantity < 0 {
		return models.StockUpdate{}, fmt.Errorf("apply sale of %q: %w", itemName, ErrInvalidQuantity)
	}

	item, err := s.store.DecrementStock(ctx, itemName, quantity)
	if errors.Is(err, store.ErrItemNotFound) {
		return models.StockUpdate{}, fmt.Errorf("apply sale of %q: %w", itemName, ErrItemNotFound)
	}
	if err != nil {
		return models.StockUpdate{}, fmt.Errorf("apply sale of %q: %w: %v", itemName, ErrStorageFailure, err)
	}

	update := models.StockUpdate{
		Item:         item.Name,
		NewStock:     item.CurrentStock,
		ReorderPoint: item.ReorderPoint,
		AlertNeeded:  item.CurrentStock <= item.ReorderPoint,
	}

	s.logger.Info("sale applied",
		zap.String("item", update.Item),
		zap.Int("quantity", quantity),
		zap.Int("new_stock", update.NewStock),
		zap.Bool("alert", update.AlertNeeded))

	return update, nil
}

// Restock is the explicit stock increase: a negative decrement under the same
// atomicity guarantees as ApplySale.
func (s *Service) Restock(ctx context.Context, itemName string, quantity int) (models.StockUpdate, error) {
	if quantity < 0 {
		return models.StockUpdate{}, fmt.Errorf("restock %q: %w", itemName, ErrInvalidQuantity)
	}

	item, err := s.store.DecrementStock(ctx, itemName, -quantity)
	if errors.Is(err, store.ErrItemNotFound) {
		return models.StockUpdate{}, fmt.Errorf("restock %q: %w", itemName, ErrItemNotFound)
	}
	if err != nil {
		return models.StockUpdate{}, fmt.Errorf("restock %q: %w: %v", itemName, ErrStorageFailure, err)
	}

	return models.StockUpdate{
		Item:         item.Name,
		NewStock:     item.CurrentStock,
		ReorderPoint: item.ReorderPoint,
		AlertNeeded:  item.CurrentStock <= item.ReorderPoint,
	}, nil
}

// LowStock lists every item at or below its reorder point.
func (s *Service) LowStock(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w: %v", ErrStorageFailure, err)
	}

	var low []models.InventoryItem
	for _, item := range items {
		if item.CurrentStock <= item.ReorderPoint {
			low = append(low, item)
		}
	}
	return low, nil
}
