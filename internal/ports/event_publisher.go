package ports

import "context"

// EventPublisher — отправка событий каталога в брокер.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
	Close() error
}
