package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// ConsumerConfig — параметры потребителя событий каталога.
type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string // "first" | "last"

	ProcessTimeout time.Duration
	RetryInitial   time.Duration
	RetryMax       time.Duration
}

// Лимиты выборки: события каталога маленькие, ждать заполнения батча не нужно.
const (
	readerMinBytes = 1
	readerMaxBytes = 1 << 20
	readerMaxWait  = 500 * time.Millisecond
)

// ReaderConfig — конфиг kafka.Reader с ручным коммитом оффсетов.
// Любое значение StartOffset, кроме "first" (без учёта регистра и пробелов), читается как "last".
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	offset := kafka.LastOffset
	if strings.EqualFold(strings.TrimSpace(c.StartOffset), "first") {
		offset = kafka.FirstOffset
	}
	return kafka.ReaderConfig{
		Brokers:     c.Brokers,
		GroupID:     c.GroupID,
		Topic:       c.Topic,
		StartOffset: offset,
		MinBytes:    readerMinBytes,
		MaxBytes:    readerMaxBytes,
		MaxWait:     readerMaxWait,
	}
}

// withDefaults — таймауты обработки и backoff по умолчанию.
func (c ConsumerConfig) withDefaults() ConsumerConfig {
	if c.ProcessTimeout <= 0 {
		c.ProcessTimeout = 5 * time.Second
	}
	if c.RetryInitial <= 0 {
		c.RetryInitial = time.Second
	}
	if c.RetryMax <= 0 {
		c.RetryMax = 30 * time.Second
	}
	return c
}

// ProducerConfig — параметры публикации событий каталога.
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}
