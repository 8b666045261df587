package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/mototransporte/internal/app/models"
	"github.com/yigit/mototransporte/internal/pkg/helpers"
	"github.com/yigit/mototransporte/internal/pkg/validation"
	"github.com/yigit/mototransporte/internal/storage"
)

// record is a stored entity that can be searched by field name.
type record interface {
	models.Entity
	Fields() validation.Fields
}

// collection is the in-memory mirror of one stored collection. Mutations hold
// the write lock until the storage operation has finished so that the cache
// and the store never disagree.
type collection[T record] struct {
	name   string
	facade storage.Facade
	log    zerolog.Logger

	mu    sync.RWMutex
	items []T
}

func newCollection[T record](name string, facade storage.Facade, log zerolog.Logger) *collection[T] {
	return &collection[T]{
		name:   name,
		facade: facade,
		log:    log.With().Str("collection", name).Logger(),
		items:  []T{},
	}
}

func newID() string {
	return uuid.NewString()
}

// Load replaces the cache with the stored collection. On failure the cache is
// left empty and the error is returned for reporting only.
func (c *collection[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = []T{}
	records, err := c.facade.Get(c.name).Await(context.WithoutCancel(ctx))
	if err != nil {
		c.log.Warn().Err(err).Msg("Falling back to an empty collection")
		return err
	}

	items := make([]T, 0, len(records))
	for i, raw := range records {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			c.log.Warn().Err(err).Int("index", i).Msg("Falling back to an empty collection")
			return fmt.Errorf("%w: %s[%d]: %v", storage.ErrCorrupted, c.name, i, err)
		}
		items = append(items, item)
	}
	c.items = items
	c.log.Debug().Int("records", len(items)).Msg("Collection loaded")
	return nil
}

// List returns a copy of the cached records in insertion order.
func (c *collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Count returns the number of cached records.
func (c *collection[T]) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Exists reports whether a record with id is cached.
func (c *collection[T]) Exists(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexOf(id) >= 0
}

// Filter keeps records where any of fields contains term ignoring case.
func (c *collection[T]) Filter(term string, fields ...string) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []T{}
	for _, item := range c.items {
		values := item.Fields()
		texts := make([]string, 0, len(fields))
		for _, f := range fields {
			texts = append(texts, values.String(f))
		}
		if helpers.MatchAny(term, texts...) {
			out = append(out, item)
		}
	}
	return out
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// indexOf must be called with the lock held.
func (c *collection[T]) indexOf(id string) int {
	for i, item := range c.items {
		if item.GetID() == id {
			return i
		}
	}
	return -1
}

// put persists item and appends it once storage confirms. Lock must be held.
func (c *collection[T]) put(ctx context.Context, item T) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", c.name, err)
	}
	if _, err := c.facade.Put(c.name, raw).Await(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	c.items = append(c.items, item)
	return nil
}

// replace persists item over the stored record with the same id and merges the
// stored result into the cache. Lock must be held.
func (c *collection[T]) replace(ctx context.Context, item T) (T, error) {
	var zero T
	raw, err := json.Marshal(item)
	if err != nil {
		return zero, fmt.Errorf("encode %s record: %w", c.name, err)
	}
	merged, err := c.facade.Update(c.name, raw).Await(context.WithoutCancel(ctx))
	if err != nil {
		return zero, err
	}
	var stored T
	if err := json.Unmarshal(merged, &stored); err != nil {
		return zero, fmt.Errorf("%w: %s: %v", storage.ErrCorrupted, c.name, err)
	}
	if i := c.indexOf(stored.GetID()); i >= 0 {
		c.items[i] = stored
	}
	return stored, nil
}

// remove deletes id from storage and then from the cache.
func (c *collection[T]) remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.facade.Delete(c.name, id).Await(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	if i := c.indexOf(id); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
	return nil
}
