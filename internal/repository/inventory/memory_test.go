package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahmidrayat/dukandost/internal/domain/models"
	"github.com/tahmidrayat/dukandost/internal/repository/inventory"
)

func TestMemoryStore_DecrementStock(t *testing.T) {
	ctx := context.Background()
	store := inventory.NewMemoryStore()
	require.NoError(t, store.Seed(ctx, []models.InventoryItem{
		{Name: "chal", CurrentStock: 10, ReorderPoint: 3},
	}))

	item, err := store.DecrementStock(ctx, "chal", 4)
	require.NoError(t, err)
	assert.Equal(t, 6, item.CurrentStock)
	assert.Equal(t, 3, item.ReorderPoint)

	// Oversell is representable: stock goes negative, no floor.
	item, err = store.DecrementStock(ctx, "chal", 9)
	require.NoError(t, err)
	assert.Equal(t, -3, item.CurrentStock)
}

func TestMemoryStore_UnknownItem(t *testing.T) {
	ctx := context.Background()
	store := inventory.NewMemoryStore()

	_, err := store.Get(ctx, "nai")
	assert.ErrorIs(t, err, inventory.ErrItemNotFound)

	_, err = store.DecrementStock(ctx, "nai", 1)
	assert.ErrorIs(t, err, inventory.ErrItemNotFound)
}

func TestMemoryStore_SeedKeepsExistingStock(t *testing.T) {
	ctx := context.Background()
	store := inventory.NewMemoryStore()

	require.NoError(t, store.Seed(ctx, []models.InventoryItem{{Name: "dal", CurrentStock: 30, ReorderPoint: 8}}))
	_, err := store.DecrementStock(ctx, "dal", 5)
	require.NoError(t, err)

	// Re-seeding must not reset stock already mutated by sales.
	require.NoError(t, store.Seed(ctx, []models.InventoryItem{{Name: "dal", CurrentStock: 30, ReorderPoint: 8}}))

	item, err := store.Get(ctx, "dal")
	require.NoError(t, err)
	assert.Equal(t, 25, item.CurrentStock)
}
