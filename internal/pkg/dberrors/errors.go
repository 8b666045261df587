package dberrors

import (
	"errors"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
	bolt "go.etcd.io/bbolt"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation = "23505"
	pgDiskFull        = "53100"
	pgOutOfMemory     = "53200"
)

// IsDuplicateKeyError reports a unique constraint violation on either SQL backend.
func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE ||
			sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// IsStorageFull reports whether err means the backend ran out of space, the
// equivalent of a browser storage quota error.
func IsStorageFull(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgDiskFull || pgErr.Code == pgOutOfMemory
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3lib.SQLITE_FULL
	}
	if errors.Is(err, bolt.ErrValueTooLarge) {
		return true
	}
	return errors.Is(err, syscall.ENOSPC)
}
