package ports

import "context"

// MessageConsumer — фоновый потребитель событий каталога.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
