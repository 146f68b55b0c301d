// Package store provides data storage interfaces and implementations.
package store

import (
	"context"
	"errors"

	"itemsvc/internal/model"
)

// Store errors.
var (
	ErrNotFound = errors.New("item not found")
	ErrNilItem  = errors.New("item cannot be nil")
)

// Store defines the interface for item storage operations.
// The registry deliberately has no delete: ids are assigned once,
// monotonically, and are never reused.
type Store interface {
	// List returns all items in insertion order.
	List(ctx context.Context) ([]model.Item, error)

	// Get retrieves an item by its ID.
	Get(ctx context.Context, id int64) (*model.Item, error)

	// Create adds a new item to the store and returns the stored item
	// with its assigned ID. Any ID on the input is ignored.
	Create(ctx context.Context, item *model.Item) (*model.Item, error)

	// Update replaces the name, price and quantity of the item stored
	// under id. The stored ID is preserved; any ID on the input is
	// ignored.
	Update(ctx context.Context, id int64, item *model.Item) (*model.Item, error)
}
