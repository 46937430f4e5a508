package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/brewery-dashboard/internal/config"
	"github.com/couchcryptid/brewery-dashboard/internal/domain"
)

// SnapshotWriter publishes snapshot summaries to a Kafka topic.
// It implements dashboard.SnapshotPublisher.
type SnapshotWriter struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewSnapshotWriter creates a Kafka producer for the configured snapshot topic.
func NewSnapshotWriter(cfg *config.Config, logger *slog.Logger) *SnapshotWriter {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaSnapshotTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &SnapshotWriter{writer: w, logger: logger}
}

// Publish writes one summary, keyed by snapshot digest.
func (w *SnapshotWriter) Publish(ctx context.Context, summary domain.SnapshotSummary) error {
	msg, err := serializeToMessage(summary)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write snapshot %s: %w", summary.Digest, err)
	}
	w.logger.Debug("snapshot published", "topic", w.writer.Topic, "digest", summary.Digest)
	return nil
}

func (w *SnapshotWriter) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a SnapshotSummary into a Kafka message.
func serializeToMessage(summary domain.SnapshotSummary) (kafkago.Message, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize snapshot summary: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(summary.Digest),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "digest", Value: []byte(summary.Digest)},
			{Key: "fetched_at", Value: []byte(summary.FetchedAt.Format(time.RFC3339))},
		},
	}, nil
}
