package dberrors

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	bolt "go.etcd.io/bbolt"
)

func TestIsStorageFull(t *testing.T) {
	assert.True(t, IsStorageFull(&pgconn.PgError{Code: "53100"}))
	assert.True(t, IsStorageFull(fmt.Errorf("write: %w", &pgconn.PgError{Code: "53200"})))
	assert.True(t, IsStorageFull(fmt.Errorf("write: %w", syscall.ENOSPC)))
	assert.True(t, IsStorageFull(bolt.ErrValueTooLarge))

	assert.False(t, IsStorageFull(nil))
	assert.False(t, IsStorageFull(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsStorageFull(errors.New("boom")))
}

func TestIsDuplicateKeyError(t *testing.T) {
	assert.True(t, IsDuplicateKeyError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsDuplicateKeyError(&pgconn.PgError{Code: "53100"}))
	assert.False(t, IsDuplicateKeyError(errors.New("duplicate")))
}
