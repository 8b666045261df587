package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/mototransporte/internal/pkg/apperrors"
	"github.com/yigit/mototransporte/internal/pkg/dberrors"
)

// Record is one serialized entity. Every record carries a string "id" field.
type Record = json.RawMessage

// Facade is the asynchronous create/read/update/delete surface over the
// persisted collections.
type Facade interface {
	Get(collection string) *Future[[]Record]
	Put(collection string, record Record) *Future[struct{}]
	// Update shallow-merges record into the stored record with the same id.
	Update(collection string, record Record) *Future[Record]
	Delete(collection, id string) *Future[struct{}]
	// Replace overwrites a whole collection.
	Replace(collection string, records []Record) *Future[struct{}]
	// Remove drops a whole collection.
	Remove(collection string) *Future[struct{}]
	Close() error
}

// LocalFacade runs every operation on a single worker goroutine so results
// are produced in the order operations were issued.
type LocalFacade struct {
	store   KeyValueStore
	latency time.Duration
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	ops    chan func()
	wg     sync.WaitGroup
}

// NewLocalFacade starts the worker. latency is slept before each operation.
func NewLocalFacade(store KeyValueStore, latency time.Duration, log zerolog.Logger) *LocalFacade {
	f := &LocalFacade{
		store:   store,
		latency: latency,
		log:     log,
		ops:     make(chan func(), 64),
	}
	f.wg.Add(1)
	go f.run()
	return f
}

func (f *LocalFacade) run() {
	defer f.wg.Done()
	for op := range f.ops {
		if f.latency > 0 {
			time.Sleep(f.latency)
		}
		op()
	}
}

func submit[T any](f *LocalFacade, fn func(ctx context.Context) (T, error)) *Future[T] {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		var zero T
		return Resolved(zero, ErrClosed)
	}
	fut := newFuture[T]()
	f.ops <- func() {
		fut.resolve(fn(context.Background()))
	}
	return fut
}

// Close waits for queued operations to finish and closes the store.
func (f *LocalFacade) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	close(f.ops)
	f.mu.Unlock()

	f.wg.Wait()
	return f.store.Close()
}

func (f *LocalFacade) Get(collection string) *Future[[]Record] {
	return submit(f, func(ctx context.Context) ([]Record, error) {
		return f.load(ctx, collection)
	})
}

func (f *LocalFacade) Put(collection string, record Record) *Future[struct{}] {
	return submit(f, func(ctx context.Context) (struct{}, error) {
		records, err := f.load(ctx, collection)
		if err != nil {
			return struct{}{}, err
		}
		return struct{}{}, f.save(ctx, collection, append(records, record))
	})
}

func (f *LocalFacade) Update(collection string, record Record) *Future[Record] {
	return submit(f, func(ctx context.Context) (Record, error) {
		patch, id, err := decodeRecord(record)
		if err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		records, err := f.load(ctx, collection)
		if err != nil {
			return nil, err
		}
		for i, raw := range records {
			stored, storedID, err := decodeRecord(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %v", ErrCorrupted, collection, i, err)
			}
			if storedID != id {
				continue
			}
			for k, v := range patch {
				stored[k] = v
			}
			merged, err := json.Marshal(stored)
			if err != nil {
				return nil, apperrors.NewStorageError("encode merged record", err)
			}
			records[i] = merged
			if err := f.save(ctx, collection, records); err != nil {
				return nil, err
			}
			return merged, nil
		}
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, collection, id)
	})
}

func (f *LocalFacade) Delete(collection, id string) *Future[struct{}] {
	return submit(f, func(ctx context.Context) (struct{}, error) {
		records, err := f.load(ctx, collection)
		if err != nil {
			return struct{}{}, err
		}
		kept := make([]Record, 0, len(records))
		for i, raw := range records {
			_, storedID, err := decodeRecord(raw)
			if err != nil {
				return struct{}{}, fmt.Errorf("%w: %s[%d]: %v", ErrCorrupted, collection, i, err)
			}
			if storedID != id {
				kept = append(kept, raw)
			}
		}
		if len(kept) == len(records) {
			return struct{}{}, fmt.Errorf("%w: %s %s", ErrNotFound, collection, id)
		}
		return struct{}{}, f.save(ctx, collection, kept)
	})
}

func (f *LocalFacade) Replace(collection string, records []Record) *Future[struct{}] {
	return submit(f, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, f.save(ctx, collection, records)
	})
}

func (f *LocalFacade) Remove(collection string) *Future[struct{}] {
	return submit(f, func(ctx context.Context) (struct{}, error) {
		if err := f.store.RemoveItem(ctx, collection); err != nil {
			return struct{}{}, classify("remove "+collection, err)
		}
		return struct{}{}, nil
	})
}

// load returns an empty slice for a collection that was never written.
func (f *LocalFacade) load(ctx context.Context, collection string) ([]Record, error) {
	raw, found, err := f.store.GetItem(ctx, collection)
	if err != nil {
		return nil, classify("read "+collection, err)
	}
	if !found || len(bytes.TrimSpace(raw)) == 0 {
		return []Record{}, nil
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		f.log.Warn().Err(err).Str("collection", collection).Msg("Stored collection could not be decoded")
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupted, collection, err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (f *LocalFacade) save(ctx context.Context, collection string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return apperrors.NewStorageError("encode "+collection, err)
	}
	if err := f.store.SetItem(ctx, collection, raw); err != nil {
		f.log.Error().Err(err).Str("collection", collection).Int("bytes", len(raw)).Msg("Failed to persist collection")
		return classify("write "+collection, err)
	}
	f.log.Debug().Str("collection", collection).Int("records", len(records)).Msg("Collection persisted")
	return nil
}

func classify(op string, err error) error {
	if errors.Is(err, ErrQuotaExceeded) || dberrors.IsStorageFull(err) {
		return apperrors.NewStorageError(op+": storage full", errors.Join(ErrQuotaExceeded, err))
	}
	return apperrors.NewStorageError(op, err)
}

func decodeRecord(raw Record) (map[string]json.RawMessage, string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, "", fmt.Errorf("record is not an object: %w", err)
	}
	var id string
	if v, ok := fields["id"]; ok {
		if err := json.Unmarshal(v, &id); err != nil {
			return nil, "", fmt.Errorf("record id is not a string: %w", err)
		}
	}
	if id == "" {
		return nil, "", errors.New("record has no id")
	}
	return fields, id, nil
}
