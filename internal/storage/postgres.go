package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/mototransporte/internal/pkg/logger"
)

// PostgresStore keeps items in the kv_items table of a PostgreSQL database.
type PostgresStore struct {
	db *pgxpool.Pool
	q  kvQueries
}

// NewPostgresStore wraps a migrated connection pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db: db,
		q:  kvQueries{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)},
	}
}

func (s *PostgresStore) GetItem(ctx context.Context, key string) ([]byte, bool, error) {
	sql, args, err := s.q.get(key)
	if err != nil {
		logger.Error().Err(err).Msg("Error building get item SQL")
		return nil, false, fmt.Errorf("failed to build get item query: %w", err)
	}

	var value []byte
	err = s.db.QueryRow(ctx, sql, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Error scanning item row")
		return nil, false, fmt.Errorf("error getting item: %w", err)
	}
	return value, true, nil
}

func (s *PostgresStore) SetItem(ctx context.Context, key string, value []byte) error {
	sql, args, err := s.q.upsert(key, value, time.Now().UTC())
	if err != nil {
		logger.Error().Err(err).Msg("Error building set item SQL")
		return fmt.Errorf("failed to build set item query: %w", err)
	}
	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Error executing set item query")
		return fmt.Errorf("error setting item: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveItem(ctx context.Context, key string) error {
	sql, args, err := s.q.remove(key)
	if err != nil {
		return fmt.Errorf("failed to build remove item query: %w", err)
	}
	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Error executing remove item query")
		return fmt.Errorf("error removing item: %w", err)
	}
	return nil
}

func (s *PostgresStore) Keys(ctx context.Context) ([]string, error) {
	sql, args, err := s.q.keys()
	if err != nil {
		return nil, fmt.Errorf("failed to build keys query: %w", err)
	}
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying keys: %w", err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("error collecting keys: %w", err)
	}
	return keys, nil
}

// Close closes the pool.
func (s *PostgresStore) Close() error {
	if s != nil && s.db != nil {
		s.db.Close()
	}
	return nil
}
