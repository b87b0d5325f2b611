// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	kvTable       = "kv_store"
	kvKeyColumn   = "item_key"
	kvValueColumn = "item_value"
	kvUpdatedAt   = "updated_at"

	upsertSuffix = "ON CONFLICT (" + kvKeyColumn + ") DO UPDATE SET " +
		kvValueColumn + " = excluded." + kvValueColumn + ", " +
		kvUpdatedAt + " = excluded." + kvUpdatedAt
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// kvQueries builds every statement of the key-value table for one
// placeholder format ("?" for SQLite, "$n" for PostgreSQL).
type kvQueries struct {
	builder sq.StatementBuilderType
}

func newKVQueries(format sq.PlaceholderFormat) kvQueries {
	return kvQueries{builder: sq.StatementBuilder.PlaceholderFormat(format)}
}

func (q kvQueries) get(key string) (string, []any, error) {
	return q.builder.
		Select(kvValueColumn).
		From(kvTable).
		Where(sq.Eq{kvKeyColumn: key}).
		ToSql()
}

func (q kvQueries) upsert(key, value string, at time.Time) (string, []any, error) {
	return q.builder.
		Insert(kvTable).
		Columns(kvKeyColumn, kvValueColumn, kvUpdatedAt).
		Values(key, value, at).
		Suffix(upsertSuffix).
		ToSql()
}

func (q kvQueries) remove(key string) (string, []any, error) {
	return q.builder.
		Delete(kvTable).
		Where(sq.Eq{kvKeyColumn: key}).
		ToSql()
}

func (q kvQueries) keys(prefix string) (string, []any, error) {
	return q.builder.
		Select(kvKeyColumn).
		From(kvTable).
		Where(sq.Expr(kvKeyColumn+` LIKE ? ESCAPE '\'`, likeEscaper.Replace(prefix)+"%")).
		OrderBy(kvKeyColumn).
		ToSql()
}
