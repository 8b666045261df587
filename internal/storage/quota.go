package storage

import (
	"context"
	"fmt"
)

// QuotaStore rejects writes that would push the summed size of all values past
// a byte limit.
type QuotaStore struct {
	KeyValueStore
	limit int64
}

// WithQuota decorates store with a byte limit. A non-positive limit disables it.
func WithQuota(store KeyValueStore, limit int64) KeyValueStore {
	if limit <= 0 {
		return store
	}
	return &QuotaStore{KeyValueStore: store, limit: limit}
}

// Usage sums the size of every stored value.
func (q *QuotaStore) Usage(ctx context.Context) (int64, error) {
	return q.usageExcluding(ctx, "")
}

func (q *QuotaStore) usageExcluding(ctx context.Context, skip string) (int64, error) {
	keys, err := q.KeyValueStore.Keys(ctx)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, k := range keys {
		if k == skip {
			continue
		}
		v, _, err := q.KeyValueStore.GetItem(ctx, k)
		if err != nil {
			return 0, err
		}
		total += int64(len(k) + len(v))
	}
	return total, nil
}

func (q *QuotaStore) SetItem(ctx context.Context, key string, value []byte) error {
	used, err := q.usageExcluding(ctx, key)
	if err != nil {
		return err
	}
	if need := used + int64(len(key)+len(value)); need > q.limit {
		return fmt.Errorf("%w: writing %s needs %d of %d bytes", ErrQuotaExceeded, key, need, q.limit)
	}
	return q.KeyValueStore.SetItem(ctx, key, value)
}
