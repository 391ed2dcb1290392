// Package inventory provides the stock ledger behind the update service.
// Implementations must make DecrementStock an atomic read-modify-write per
// item so concurrent sales of the same item never lose an update.
package inventory

import (
	"context"
	"errors"

	"github.com/tahmidrayat/dukandost/internal/domain/models"
)

// ErrItemNotFound is returned when the requested canonical name has no ledger
// entry.
var ErrItemNotFound = errors.New("inventory item not found")

// Store defines the persistence operations for the stock ledger.
type Store interface {
	// Get returns the current ledger entry for name.
	Get(ctx context.Context, name string) (models.InventoryItem, error)
	// DecrementStock subtracts quantity from the item's stock and returns
	// the post-update entry. The subtraction and the returned read are one
	// atomic operation; stock is allowed to go negative.
	DecrementStock(ctx context.Context, name string, quantity int) (models.InventoryItem, error)
	// List returns all ledger entries.
	List(ctx context.Context) ([]models.InventoryItem, error)
	// Seed inserts the given items if they do not exist yet; existing
	// entries keep their current stock.
	Seed(ctx context.Context, items []models.InventoryItem) error
}

// Starting values for ledger entries seeded from a custom vocabulary.
const (
	seedStock        = 50
	seedReorderPoint = 10
)

// DefaultSeed returns the fixed starting ledger for the built-in vocabulary.
func DefaultSeed() []models.InventoryItem {
	return []models.InventoryItem{
		{Name: "chal", CurrentStock: 50, ReorderPoint: 10},
		{Name: "dal", CurrentStock: 30, ReorderPoint: 8},
		{Name: "tel", CurrentStock: 25, ReorderPoint: 5},
		{Name: "chini", CurrentStock: 40, ReorderPoint: 10},
		{Name: "lobon", CurrentStock: 20, ReorderPoint: 5},
		{Name: "atta", CurrentStock: 35, ReorderPoint: 8},
	}
}

// SeedForItems builds a starting ledger entry for every canonical name, so a
// shop running a custom vocabulary gets a ledger that matches what its
// extractor can recognize.
func SeedForItems(names []string) []models.InventoryItem {
	items := make([]models.InventoryItem, 0, len(names))
	for _, name := range names {
		items = append(items, models.InventoryItem{
			Name:         name,
			CurrentStock: seedStock,
			ReorderPoint: seedReorderPoint,
		})
	}
	return items
}
