package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-quote-guard/internal/logger"
)

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func newTestSQLStore(t *testing.T, format sq.PlaceholderFormat, classifier ErrorClassificator) (*sqlKeyValueStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	kv := NewSQLKeyValueStore(&DB{
		DB:                 db,
		logger:             logger.Nop(),
		errorClassificator: classifier,
	}, format).(*sqlKeyValueStore)
	kv.retryDelay = time.Millisecond
	kv.now = func() time.Time { return fixedNow }

	return kv, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestSQLStore_Get_Success(t *testing.T) {
	kv, mock := newTestSQLStore(t, sq.Question, NewSQLiteErrorClassifier())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT item_value FROM kv_store WHERE item_key = ?")).
		WithArgs("passwordHash").
		WillReturnRows(sqlmock.NewRows([]string{"item_value"}).AddRow("abc"))

	v, err := kv.Get(context.Background(), "passwordHash")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Get_NotFound(t *testing.T) {
	kv, mock := newTestSQLStore(t, sq.Question, NewSQLiteErrorClassifier())

	mock.ExpectQuery("SELECT item_value FROM kv_store").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := kv.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrKeyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Get_DatabaseError(t *testing.T) {
	kv, mock := newTestSQLStore(t, sq.Question, NewSQLiteErrorClassifier())

	mock.ExpectQuery("SELECT item_value FROM kv_store").
		WillReturnError(errors.New("disk I/O error"))

	_, err := kv.Get(context.Background(), "passwordHash")
	require.ErrorIs(t, err, ErrStorageUnavailable)
	require.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Set_UpsertsWithDollarPlaceholders(t *testing.T) {
	kv, mock := newTestSQLStore(t, sq.Dollar, NewPostgresErrorClassifier())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_store (item_key,item_value,updated_at) VALUES ($1,$2,$3) ON CONFLICT (item_key) DO UPDATE")).
		WithArgs("hasPassword", "true", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, kv.Set(context.Background(), "hasPassword", "true"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Set_RetriesTransientPostgresError(t *testing.T) {
	kv, mock := newTestSQLStore(t, sq.Dollar, NewPostgresErrorClassifier())

	mock.ExpectExec("INSERT INTO kv_store").
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectExec("INSERT INTO kv_store").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, kv.Set(context.Background(), "hasPassword", "true"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Set_GivesUpAfterMaxAttempts(t *testing.T) {
	kv, mock := newTestSQLStore(t, sq.Dollar, NewPostgresErrorClassifier())

	for i := 0; i < defaultMaxAttempts; i++ {
		mock.ExpectExec("INSERT INTO kv_store").
			WillReturnError(pgError(pgerrcode.ConnectionFailure))
	}

	err := kv.Set(context.Background(), "hasPassword", "true")
	require.ErrorIs(t, err, ErrStorageUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Set_NoRetryOnConstraintViolation(t *testing.T) {
	kv, mock := newTestSQLStore(t, sq.Dollar, NewPostgresErrorClassifier())

	mock.ExpectExec("INSERT INTO kv_store").
		WillReturnError(pgError(pgerrcode.NotNullViolation))

	err := kv.Set(context.Background(), "hasPassword", "true")
	require.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Remove(t *testing.T) {
	kv, mock := newTestSQLStore(t, sq.Question, NewSQLiteErrorClassifier())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_store WHERE item_key = ?")).
		WithArgs("secureBackups").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, kv.Remove(context.Background(), "secureBackups"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Keys_EscapesPrefix(t *testing.T) {
	kv, mock := newTestSQLStore(t, sq.Question, NewSQLiteErrorClassifier())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT item_key FROM kv_store WHERE item_key LIKE ? ESCAPE '\\' ORDER BY item_key")).
		WithArgs(`secure\_%`).
		WillReturnRows(sqlmock.NewRows([]string{"item_key"}).AddRow("secure_a").AddRow("secure_b"))

	keys, err := kv.Keys(context.Background(), "secure_")
	require.NoError(t, err)
	assert.Equal(t, []string{"secure_a", "secure_b"}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Keys_RowError(t *testing.T) {
	kv, mock := newTestSQLStore(t, sq.Question, NewSQLiteErrorClassifier())

	mock.ExpectQuery("SELECT item_key FROM kv_store").
		WillReturnRows(sqlmock.NewRows([]string{"item_key"}).
			AddRow("secure:a").
			RowError(0, errors.New("broken page")))

	_, err := kv.Keys(context.Background(), "secure:")
	require.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestSQLStore_RetryHonoursContext(t *testing.T) {
	kv, mock := newTestSQLStore(t, sq.Dollar, NewPostgresErrorClassifier())
	kv.retryDelay = time.Hour

	mock.ExpectExec("INSERT INTO kv_store").
		WillReturnError(pgError(pgerrcode.DeadlockDetected))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := kv.Set(ctx, "hasPassword", "true")
	require.ErrorIs(t, err, context.Canceled)
}

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	assert.Equal(t, NonRetryable, c.Classify(nil))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
	assert.Equal(t, Retryable, c.Classify(pgError(pgerrcode.ConnectionException)))
	assert.Equal(t, Retryable, c.Classify(pgError(pgerrcode.CannotConnectNow)))
	assert.Equal(t, NonRetryable, c.Classify(pgError(pgerrcode.UniqueViolation)))
	assert.Equal(t, NonRetryable, c.Classify(pgError(pgerrcode.UndefinedTable)))
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, NonRetryable, c.Classify(nil))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, c.Classify(fmt.Errorf("wrapped: %w", sqlite3.Error{Code: sqlite3.ErrLocked})))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
}

func TestSQLStore_Set_RetriesBusySQLite(t *testing.T) {
	kv, mock := newTestSQLStore(t, sq.Question, NewSQLiteErrorClassifier())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_store (item_key,item_value,updated_at) VALUES (?,?,?)")).
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrBusy})
	mock.ExpectExec("INSERT INTO kv_store").
		WithArgs("legalAccepted", "true", fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, kv.Set(context.Background(), "legalAccepted", "true"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
