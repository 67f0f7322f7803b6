package ports

import "context"

// KeyValueStore — долговременное локальное хранилище строк по ключу.
type KeyValueStore interface {
	// Get — (value, true, nil) если ключ есть; ("", false, nil) если нет.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
