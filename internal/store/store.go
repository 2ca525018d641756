package store

import (
	"context"
	"errors"
)

// Item is a single row of the table: a flat attribute map. Every item
// carries the "PK" and "SK" attributes that form its composite key.
type Item map[string]any

// Key identifies one item by partition key and sort key.
type Key struct {
	PK string
	SK string
}

// ScanFilter narrows a full-table scan. Zero-value fields match everything.
type ScanFilter struct {
	PKPrefix string // keep items whose PK starts with this prefix
	SKEquals string // keep items whose SK equals this value
}

var (
	// ErrConflict is returned by a conditional Put when the key already exists.
	ErrConflict = errors.New("store: item already exists")
	// ErrNotFound is returned by Get when no item matches the key.
	ErrNotFound = errors.New("store: item not found")
)

// Table is the capability set both backends implement. The backend is
// chosen once at startup; callers never branch on which one they got.
type Table interface {
	// Put writes an item. With requireAbsent set it fails with ErrConflict
	// if an item with the same (PK, SK) already exists.
	Put(ctx context.Context, item Item, requireAbsent bool) error
	// Get returns the item for key, or ErrNotFound.
	Get(ctx context.Context, key Key) (Item, error)
	// Delete removes the item for key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key Key) error
	// QueryPrefix returns all items in partition pk whose SK starts with skPrefix.
	QueryPrefix(ctx context.Context, pk, skPrefix string) ([]Item, error)
	// Scan returns all items matching the filter.
	Scan(ctx context.Context, filter ScanFilter) ([]Item, error)
	// Count returns the total number of items across all entity types.
	Count(ctx context.Context) (int, error)
}

// ItemKey extracts the composite key from an item.
func ItemKey(item Item) Key {
	pk, _ := item["PK"].(string)
	sk, _ := item["SK"].(string)
	return Key{PK: pk, SK: sk}
}
