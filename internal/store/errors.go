package store

import "errors"

// Sentinel errors returned by [KeyValueStore] implementations. Callers should
// use [errors.Is] to match against these values.
var (
	// ErrKeyNotFound is returned by Get when nothing is stored under the key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrStorageUnavailable wraps every I/O level failure of a backend
	// (closed database, unwritable file, exhausted retries).
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrUnsupportedDSN is returned by NewClientStorages when the DSN does not
	// map to any backend.
	ErrUnsupportedDSN = errors.New("unsupported storage dsn")
)

// Low-level database operation errors of the SQL backends.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to build a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT or DELETE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRows is returned when reading result rows fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
