package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KeyValueStore is the persistent string-keyed, string-valued store the
// security layer keeps its state in. Every write replaces the whole value;
// there are no partial or merge semantics.
type KeyValueStore interface {
	// Get returns the value stored under key or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys lists every stored key that starts with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases the underlying resources.
	Close() error
}

// ErrorClassificator decides whether a failed backend operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
