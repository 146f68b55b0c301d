package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"itemsvc/internal/model"
)

// Store-level Prometheus metrics.
var (
	itemsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "itemsvc_items_created_total",
			Help: "Total number of items created in the store",
		},
	)

	itemsStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "itemsvc_items_stored",
			Help: "Number of items currently held by the store",
		},
	)
)

// MemoryStore implements Store with in-memory storage.
//
// All state is guarded by a single RWMutex: reads take the read lock,
// mutations take the write lock. The id counter is only advanced under
// the write lock, so ids assigned by concurrent Create calls are
// guaranteed unique and strictly increasing.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]model.Item
	order  []int64 // ids in insertion order, for deterministic List
}

// NewMemoryStore creates an empty MemoryStore. The first item created
// receives id 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[int64]model.Item),
	}
}

// List returns all items in insertion order. An empty store yields an
// empty slice, never an error.
func (s *MemoryStore) List(ctx context.Context) ([]model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list items: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Item, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.items[id])
	}

	return items, nil
}

// Get retrieves an item by its ID.
func (s *MemoryStore) Get(ctx context.Context, id int64) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get item: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[id]
	if !exists {
		return nil, ErrNotFound
	}

	return &item, nil
}

// Create stores a new item under the next sequential id and returns
// the stored copy. It never fails for a non-nil item.
func (s *MemoryStore) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("create item: %w", ctx.Err())
	default:
	}

	if item == nil {
		return nil, fmt.Errorf("create item: %w", ErrNilItem)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	newItem := model.Item{
		ID:       s.nextID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: item.Quantity,
	}

	s.items[newItem.ID] = newItem
	s.order = append(s.order, newItem.ID)

	itemsCreatedTotal.Inc()
	itemsStored.Set(float64(len(s.items)))

	return &newItem, nil
}

// Update replaces the name, price and quantity of the item stored
// under id. The stored id wins over any id carried by the input.
func (s *MemoryStore) Update(ctx context.Context, id int64, item *model.Item) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("update item: %w", ctx.Err())
	default:
	}

	if item == nil {
		return nil, fmt.Errorf("update item: %w", ErrNilItem)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return nil, ErrNotFound
	}

	updatedItem := model.Item{
		ID:       id,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: item.Quantity,
	}

	s.items[id] = updatedItem

	return &updatedItem, nil
}

// Len reports the number of stored items.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
