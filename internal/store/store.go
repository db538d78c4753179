// Package store provides the keyed-collection persistence used by the
// reconciliation engine. Each key holds one whole collection, serialized as
// JSON; reads and writes are whole-collection granular with no transaction
// spanning them. Overlapping read-modify-write cycles against the same key
// are last-write-wins (see TestLastWriteWins).
package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
)

// Collection keys addressed by the engine and its surrounding glue.
const (
	KeyInventory        = "inventory"
	KeyPurchaseRequests = "purchase_requests"
	KeyPurchaseLists    = "purchase_lists"
	KeyVendors          = "vendors"
	KeyUsers            = "users"
	KeySyncedRequests   = "synced_requests"
	KeySchedule         = "schedule"
)

// Store is the persisted keyed-collection abstraction. Get returns the raw
// payload for a key and false if the key was never initialized. Set replaces
// the payload wholesale.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Collection reads and decodes the collection persisted under key. A never-
// initialized key decodes to a nil slice.
func Collection[T any](s Store, key string) ([]T, error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

// SaveCollection encodes items and replaces the collection under key.
func SaveCollection[T any](s Store, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(key, raw); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Object reads a single keyed object (not a collection), used for the
// schedule record. Returns ErrNotFound if the key was never initialized.
func Object[T any](s Store, key string) (T, error) {
	var out T
	raw, ok, err := s.Get(key)
	if err != nil {
		return out, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return out, ErrNotFound
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

// SaveObject encodes and replaces a single keyed object.
func SaveObject[T any](s Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(key, raw); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
