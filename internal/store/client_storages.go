package store

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-quote-guard/internal/config"
	"github.com/MKhiriev/go-quote-guard/internal/logger"
)

// MemoryDSN selects the in-process backend.
const MemoryDSN = ":memory:"

// ClientStorages groups the client-side storage backends.
type ClientStorages struct {
	// KeyValueStore holds every persisted key of the security layer.
	KeyValueStore KeyValueStore
}

// NewClientStorages picks a [KeyValueStore] backend from cfg.DB.DSN:
//   - ":memory:"                    in-process map;
//   - "*.json"                      single JSON document on disk;
//   - "postgres://", "postgresql://" PostgreSQL, migrated with goose;
//   - anything else                 SQLite file, migrated with goose.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating new storages...")

	dsn := strings.TrimSpace(cfg.DB.DSN)
	switch {
	case dsn == "":
		return nil, ErrUnsupportedDSN
	case dsn == MemoryDSN:
		return &ClientStorages{KeyValueStore: NewMemoryStore()}, nil
	case strings.HasSuffix(strings.ToLower(dsn), ".json"):
		kv, err := NewFileStore(dsn)
		if err != nil {
			return nil, fmt.Errorf("open json store: %w", err)
		}
		return &ClientStorages{KeyValueStore: kv}, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}
		return migrated(db, sq.Dollar)
	default:
		db, err := NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		return migrated(db, sq.Question)
	}
}

func migrated(db *DB, format sq.PlaceholderFormat) (*ClientStorages, error) {
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		KeyValueStore: NewSQLKeyValueStore(db, format),
	}, nil
}
