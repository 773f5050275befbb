// Package publisher pushes audit outbox rows to Kafka. Kafka is the durable
// home of the admission trail; the outbox table only buffers events until the
// relay has confirmed the produce.
package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pgstore "edumatch/pkg/platform/audit/store/postgres"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Kafka wraps a franz-go client producing to the audit topic.
type Kafka struct {
	client *kgo.Client
	topic  string
}

// NewKafka connects to the given seed brokers. The caller owns Close.
func NewKafka(brokers []string, topic string) (*Kafka, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Kafka{client: client, topic: topic}, nil
}

// Produce synchronously publishes one event payload keyed by aggregate id so
// per-seat ordering is preserved within a partition.
func (k *Kafka) Produce(ctx context.Context, key string, payload []byte) error {
	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(key),
		Value: payload,
	}
	if err := k.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

func (k *Kafka) Close() {
	k.client.Close()
}

// Relay drains the Postgres outbox into Kafka on a fixed interval. Rows are
// only marked published after the produce is confirmed, so a crash between
// the two at worst replays events (consumers must tolerate duplicates).
type Relay struct {
	outbox   *pgstore.Store
	kafka    *Kafka
	interval time.Duration
	batch    int
	logger   *slog.Logger
}

func NewRelay(outbox *pgstore.Store, kafka *Kafka, interval time.Duration, logger *slog.Logger) *Relay {
	return &Relay{
		outbox:   outbox,
		kafka:    kafka,
		interval: interval,
		batch:    100,
		logger:   logger,
	}
}

func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.drain(ctx); err != nil {
				// Transient broker trouble should not kill the relay; the
				// outbox retains everything until the next tick.
				r.logger.ErrorContext(ctx, "audit relay drain failed", "error", err)
			}
		}
	}
}

func (r *Relay) drain(ctx context.Context) error {
	rows, err := r.outbox.Unpublished(ctx, r.batch)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	published := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if err := r.kafka.Produce(ctx, row.AggregateID, row.Payload); err != nil {
			break
		}
		published = append(published, row.ID)
	}
	return r.outbox.MarkPublished(ctx, published)
}
