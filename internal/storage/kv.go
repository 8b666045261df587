// Package storage persists entity collections in a key-value store and exposes
// them through an asynchronous facade.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/mototransporte/internal/pkg/apperrors"
)

var (
	// ErrNotFound is returned by Update and Delete when no record has the given id.
	ErrNotFound = fmt.Errorf("record %w", apperrors.ErrResourceNotFound)
	// ErrCorrupted is returned when a stored collection cannot be decoded.
	ErrCorrupted = fmt.Errorf("%w: corrupted payload", apperrors.ErrStorage)
	// ErrQuotaExceeded is returned by writes that would exceed the configured quota.
	ErrQuotaExceeded = apperrors.ErrStorageFull
	// ErrClosed is returned for operations issued after Close.
	ErrClosed = errors.New("storage is closed")
)

// KeyValueStore is a durable string-keyed blob store.
type KeyValueStore interface {
	// GetItem returns the value stored at key. found is false when the key is absent.
	GetItem(ctx context.Context, key string) (value []byte, found bool, err error)
	SetItem(ctx context.Context, key string, value []byte) error
	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
