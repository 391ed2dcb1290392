package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahmidrayat/dukandost/internal/domain/models"
	store "github.com/tahmidrayat/dukandost/internal/repository/inventory"
	"github.com/tahmidrayat/dukandost/internal/service/inventory"
)

func seededService(t *testing.T, items ...models.InventoryItem) (*inventory.Service, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	require.NoError(t, s.Seed(context.Background(), items))
	return inventory.NewService(s, nil), s
}

func TestApplySale(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		reorder   int
		qty       int
		wantStock int
		wantAlert bool
	}{
		{name: "plenty left", stock: 50, reorder: 10, qty: 5, wantStock: 45, wantAlert: false},
		{name: "exactly at reorder point", stock: 15, reorder: 10, qty: 5, wantStock: 10, wantAlert: true},
		{name: "below reorder point", stock: 12, reorder: 10, qty: 5, wantStock: 7, wantAlert: true},
		{name: "oversell goes negative", stock: 3, reorder: 10, qty: 8, wantStock: -5, wantAlert: true},
		{name: "zero quantity is a no-op sale", stock: 20, reorder: 10, qty: 0, wantStock: 20, wantAlert: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := seededService(t, models.InventoryItem{
				Name: "chal", CurrentStock: tc.stock, ReorderPoint: tc.reorder,
			})

			upd, err := svc.ApplySale(context.Background(), "chal", tc.qty)
			require.NoError(t, err)
			assert.Equal(t, "chal", upd.Item)
			assert.Equal(t, tc.wantStock, upd.NewStock)
			assert.Equal(t, tc.wantAlert, upd.AlertNeeded)
		})
	}
}

func TestApplySale_UnknownItem(t *testing.T) {
	svc, _ := seededService(t, models.InventoryItem{Name: "chal", CurrentStock: 50, ReorderPoint: 10})

	_, err := svc.ApplySale(context.Background(), "unknown-item", 5)
	assert.ErrorIs(t, err, inventory.ErrItemNotFound)
}

func TestApplySale_RejectsNegativeQuantity(t *testing.T) {
	svc, s := seededService(t, models.InventoryItem{Name: "chal", CurrentStock: 50, ReorderPoint: 10})

	_, err := svc.ApplySale(context.Background(), "chal", -3)
	assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)

	item, err := s.Get(context.Background(), "chal")
	require.NoError(t, err)
	assert.Equal(t, 50, item.CurrentStock, "rejected sale must not touch stock")
}

func TestApplySale_StorageFailure(t *testing.T) {
	svc := inventory.NewService(failingStore{}, nil)

	_, err := svc.ApplySale(context.Background(), "chal", 1)
	assert.ErrorIs(t, err, inventory.ErrStorageFailure)
	assert.NotErrorIs(t, err, inventory.ErrItemNotFound, "a storage fault must not look like a missing item")
}

func TestApplySale_ConcurrentSalesLoseNoUpdates(t *testing.T) {
	const workers = 50
	svc, s := seededService(t, models.InventoryItem{Name: "chal", CurrentStock: 1000, ReorderPoint: 10})

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.ApplySale(context.Background(), "chal", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	item, err := s.Get(context.Background(), "chal")
	require.NoError(t, err)
	assert.Equal(t, 1000-workers, item.CurrentStock)
}

func TestRestock(t *testing.T) {
	svc, _ := seededService(t, models.InventoryItem{Name: "dal", CurrentStock: 4, ReorderPoint: 8})

	upd, err := svc.Restock(context.Background(), "dal", 20)
	require.NoError(t, err)
	assert.Equal(t, 24, upd.NewStock)
	assert.False(t, upd.AlertNeeded)

	_, err = svc.Restock(context.Background(), "dal", -1)
	assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)
}

func TestLowStock(t *testing.T) {
	svc, _ := seededService(t,
		models.InventoryItem{Name: "chal", CurrentStock: 50, ReorderPoint: 10},
		models.InventoryItem{Name: "dal", CurrentStock: 8, ReorderPoint: 8},
		models.InventoryItem{Name: "tel", CurrentStock: -2, ReorderPoint: 5},
	)

	low, err := svc.LowStock(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(low))
	for _, item := range low {
		names = append(names, item.Name)
	}
	assert.ElementsMatch(t, []string{"dal", "tel"}, names)
}

// failingStore simulates a broken backing store.
type failingStore struct{}

var errDown = errors.New("connection reset")

func (failingStore) Get(ctx context.Context, name string) (models.InventoryItem, error) {
	return models.InventoryItem{}, errDown
}

func (failingStore) DecrementStock(ctx context.Context, name string, quantity int) (models.InventoryItem, error) {
	return models.InventoryItem{}, errDown
}

func (failingStore) List(ctx context.Context) ([]models.InventoryItem, error) {
	return nil, errDown
}

func (failingStore) Seed(ctx context.Context, items []models.InventoryItem) error {
	return errDown
}
