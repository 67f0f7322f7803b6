//go:build integration

package testutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
)

// Broker — redpanda для потока изменений каталога.
type Broker struct {
	Container *redpanda.Container
	Addr      string
}

func StartBroker(ctx context.Context) (*Broker, error) {
	rp, err := redpanda.Run(ctx, "docker.redpanda.com/redpandadata/redpanda:v23.3.8",
		tc.WithLifecycleHooks(lifecycleLog(tcLog)),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, fmt.Errorf("run redpanda: %w", err)
	}
	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, fmt.Errorf("seed broker: %w", err)
	}
	// testcontainers отдаёт адрес со схемой PLAINTEXT://
	if i := strings.Index(seed, "://"); i >= 0 {
		seed = seed[i+3:]
	}
	return &Broker{Container: rp, Addr: seed}, nil
}

func (b *Broker) Close() error { return tc.TerminateContainer(b.Container) }

func (b *Broker) Brokers() []string { return []string{b.Addr} }

// NewTopic — уникальные топик и группа консьюмера; топик создан и виден в метаданных.
func (b *Broker) NewTopic(ctx context.Context, base string) (topic, group string, err error) {
	suffix := UniqSuffix()
	topic, group = base+"-"+suffix, base+"-g-"+suffix

	conn, err := kafka.DialContext(ctx, "tcp", b.Addr)
	if err != nil {
		return "", "", err
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return "", "", err
	}
	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return "", "", err
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return "", "", fmt.Errorf("create topic %s: %w", topic, err)
	}
	return topic, group, b.awaitTopic(ctx, topic)
}

func (b *Broker) awaitTopic(ctx context.Context, topic string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()
	for {
		conn, err := kafka.DialContext(ctx, "tcp", b.Addr)
		if err == nil {
			var parts []kafka.Partition
			parts, err = conn.ReadPartitions(topic)
			_ = conn.Close()
			if err == nil && len(parts) > 0 {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("topic %s not ready: %w", topic, errors.Join(ctx.Err(), err))
		case <-tick.C:
		}
	}
}
