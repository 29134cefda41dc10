package interfaces

import (
	"context"
	"time"

	"github.com/wedevbytes/nyaya/internal/models"
)

// KeyValuePair is a stored key/value entry (API keys, small settings).
type KeyValuePair struct {
	Key         string `badgerhold:"key"`
	Value       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SessionStorage persists channel conversation sessions keyed by the
// transport's conversation identifier.
type SessionStorage interface {
	// Get returns the session for id, or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*models.Session, error)

	// Put inserts or replaces a session, stamping UpdatedAt.
	Put(ctx context.Context, session *models.Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes sessions idle longer than ttl and returns the
	// number removed.
	DeleteExpired(ctx context.Context, ttl time.Duration) (int, error)

	// Count returns the number of stored sessions.
	Count(ctx context.Context) (int, error)
}

// QueryLogStorage persists the question/answer audit trail.
type QueryLogStorage interface {
	// Append stores a query record.
	Append(ctx context.Context, record *models.QueryRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]models.QueryRecord, error)
}

// KeyValueStorage is a small case-insensitive KV store used for API keys
// and operator-set values.
type KeyValueStorage interface {
	// Get retrieves a value by key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set inserts or updates a key/value pair.
	Set(ctx context.Context, key, value, description string) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// StorageManager bundles the typed storages backed by one database.
type StorageManager interface {
	SessionStorage() SessionStorage
	QueryLogStorage() QueryLogStorage
	KeyValueStorage() KeyValueStorage

	// Close closes the underlying database.
	Close() error
}
