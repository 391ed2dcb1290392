package inventory

import (
	"context"
	"sync"

	"github.com/tahmidrayat/dukandost/internal/domain/models"
)

// MemoryStore is an in-process Store used in tests and memory-driver dev
// mode. A single mutex covers every read-modify-write, which satisfies the
// per-item atomicity contract at the cost of serializing unrelated items;
// fine at this scale.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]models.InventoryItem
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]models.InventoryItem)}
}

func (s *MemoryStore) Get(ctx context.Context, name string) (models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[name]
	if !ok {
		return models.InventoryItem{}, ErrItemNotFound
	}
	return item, nil
}

func (s *MemoryStore) DecrementStock(ctx context.Context, name string, quantity int) (models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[name]
	if !ok {
		return models.InventoryItem{}, ErrItemNotFound
	}

	item.CurrentStock -= quantity
	s.items[name] = item
	return item, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	return items, nil
}

func (s *MemoryStore) Seed(ctx context.Context, items []models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if _, exists := s.items[item.Name]; !exists {
			s.items[item.Name] = item
		}
	}
	return nil
}
