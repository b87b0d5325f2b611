// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 50 * time.Millisecond
)

// sqlKeyValueStore is the [KeyValueStore] over a migrated SQL database.
type sqlKeyValueStore struct {
	*DB
	queries kvQueries

	maxAttempts int
	retryDelay  time.Duration
	now         func() time.Time
}

// NewSQLKeyValueStore wraps a migrated [DB]. format must match the driver:
// [sq.Question] for SQLite, [sq.Dollar] for PostgreSQL.
func NewSQLKeyValueStore(db *DB, format sq.PlaceholderFormat) KeyValueStore {
	return &sqlKeyValueStore{
		DB:          db,
		queries:     newKVQueries(format),
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
		now:         time.Now,
	}
}

func (s *sqlKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	query, args, err := s.queries.get(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.withRetry(ctx, func() error {
		return s.DB.QueryRowContext(ctx, query, args...).Scan(&value)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqlKeyValueStore.Get").
			Str("key", key).
			Msg("failed to query value")
		return "", fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, ErrExecutingQuery, err)
	}

	return value, nil
}

func (s *sqlKeyValueStore) Set(ctx context.Context, key, value string) error {
	query, args, err := s.queries.upsert(key, value, s.now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = s.withRetry(ctx, func() error {
		_, execErr := s.DB.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqlKeyValueStore.Set").
			Str("key", key).
			Msg("failed to upsert value")
		return fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqlKeyValueStore) Remove(ctx context.Context, key string) error {
	query, args, err := s.queries.remove(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = s.withRetry(ctx, func() error {
		_, execErr := s.DB.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqlKeyValueStore.Remove").
			Str("key", key).
			Msg("failed to delete value")
		return fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqlKeyValueStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	query, args, err := s.queries.keys(prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var keys []string
	err = s.withRetry(ctx, func() error {
		keys = keys[:0]

		rows, queryErr := s.DB.QueryContext(ctx, query, args...)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		for rows.Next() {
			var k string
			if scanErr := rows.Scan(&k); scanErr != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
			}
			keys = append(keys, k)
		}
		return rows.Err()
	})
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqlKeyValueStore.Keys").
			Str("prefix", prefix).
			Msg("failed to list keys")
		return nil, fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, ErrExecutingQuery, err)
	}

	return keys, nil
}

func (s *sqlKeyValueStore) Close() error {
	return s.DB.Close()
}

// withRetry runs op up to maxAttempts times while the classifier reports
// the failure as transient.
func (s *sqlKeyValueStore) withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = op()
		if err == nil || errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if s.errorClassificator == nil || s.errorClassificator.Classify(err) != Retryable || attempt >= s.maxAttempts {
			return err
		}

		s.logger.Warn().Err(err).Int("attempt", attempt).Msg("retrying storage operation")

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(s.retryDelay * time.Duration(attempt)):
		}
	}
}
