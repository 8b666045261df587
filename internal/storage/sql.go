package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
)

const kvTable = "kv_items"

// kvQueries builds the statements shared by the SQL backends.
type kvQueries struct {
	sb squirrel.StatementBuilderType
}

func (q kvQueries) get(key string) (string, []interface{}, error) {
	return q.sb.Select("item_value").
		From(kvTable).
		Where(squirrel.Eq{"item_key": key}).
		Limit(1).
		ToSql()
}

func (q kvQueries) upsert(key string, value interface{}, updatedAt interface{}) (string, []interface{}, error) {
	return q.sb.Insert(kvTable).
		Columns("item_key", "item_value", "updated_at").
		Values(key, value, updatedAt).
		Suffix("ON CONFLICT (item_key) DO UPDATE SET item_value = excluded.item_value, updated_at = excluded.updated_at").
		ToSql()
}

func (q kvQueries) remove(key string) (string, []interface{}, error) {
	return q.sb.Delete(kvTable).Where(squirrel.Eq{"item_key": key}).ToSql()
}

func (q kvQueries) keys() (string, []interface{}, error) {
	return q.sb.Select("item_key").From(kvTable).OrderBy("item_key ASC").ToSql()
}

// SQLStore keeps items in the kv_items table of a database/sql handle. It is
// used with the embedded SQLite driver.
type SQLStore struct {
	db *sql.DB
	q  kvQueries
}

// NewSQLStore wraps an already migrated database handle.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		db: db,
		q:  kvQueries{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)},
	}
}

func (s *SQLStore) GetItem(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := s.q.get(key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build get item query: %w", err)
	}

	var value []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get item %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) SetItem(ctx context.Context, key string, value []byte) error {
	query, args, err := s.q.upsert(key, string(value), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to build set item query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set item %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) RemoveItem(ctx context.Context, key string) error {
	query, args, err := s.q.remove(key)
	if err != nil {
		return fmt.Errorf("failed to build remove item query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove item %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Keys(ctx context.Context) ([]string, error) {
	query, args, err := s.q.keys()
	if err != nil {
		return nil, fmt.Errorf("failed to build keys query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Close releases the database handle.
func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
