package store

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// LocalTable is the in-process fallback backend: an ordered slice of items
// living for the lifetime of the process. Nothing is persisted across
// restarts. A single mutex serializes access so concurrent requests cannot
// corrupt the slice; read-modify-write sequences built on top of Get/Put
// are still not atomic.
type LocalTable struct {
	mu    sync.Mutex
	items []Item
}

// NewLocalTable returns an empty in-memory table.
func NewLocalTable() *LocalTable {
	logrus.Warn("Using in-memory local table; data will not survive a restart")
	return &LocalTable{}
}

// Put writes or replaces the item with the same (PK, SK). With requireAbsent
// set, an existing item makes the write fail with ErrConflict.
func (t *LocalTable) Put(_ context.Context, item Item, requireAbsent bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := ItemKey(item)
	for i, existing := range t.items {
		if ItemKey(existing) == key {
			if requireAbsent {
				return ErrConflict
			}
			t.items[i] = item
			return nil
		}
	}
	t.items = append(t.items, item)
	return nil
}

func (t *LocalTable) Get(_ context.Context, key Key) (Item, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, item := range t.items {
		if ItemKey(item) == key {
			return item, nil
		}
	}
	return nil, ErrNotFound
}

func (t *LocalTable) Delete(_ context.Context, key Key) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.items[:0]
	for _, item := range t.items {
		if ItemKey(item) != key {
			kept = append(kept, item)
		}
	}
	t.items = kept
	return nil
}

// QueryPrefix is a linear filter over the slice.
func (t *LocalTable) QueryPrefix(_ context.Context, pk, skPrefix string) ([]Item, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []Item
	for _, item := range t.items {
		key := ItemKey(item)
		if key.PK == pk && strings.HasPrefix(key.SK, skPrefix) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (t *LocalTable) Scan(_ context.Context, filter ScanFilter) ([]Item, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []Item
	for _, item := range t.items {
		key := ItemKey(item)
		if filter.PKPrefix != "" && !strings.HasPrefix(key.PK, filter.PKPrefix) {
			continue
		}
		if filter.SKEquals != "" && key.SK != filter.SKEquals {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (t *LocalTable) Count(_ context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.items), nil
}
