package repository

import (
	"context"
	"fmt"

	"SentiPull/pkg/kafka"

	"SentiPull/internal/domain/models"
)

// KafkaPublisher emits computed sentiments to the event stream, keyed
// by ticker so consumers see per-ticker ordering. It also satisfies
// the log collector's Publisher interface for aggregated error logs.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
}

// NewKafkaPublisher creates the publisher.
func NewKafkaPublisher(producer *kafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

// PublishSentiment sends one result to the sentiment topic.
func (p *KafkaPublisher) PublishSentiment(ctx context.Context, s *models.TickerSentiment) error {
	if err := p.producer.Publish(ctx, p.topic, []byte(s.Ticker), s); err != nil {
		return fmt.Errorf("publish sentiment: %w", err)
	}
	return nil
}

// PublishMessage sends an arbitrary payload to the given topic.
func (p *KafkaPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

// Close flushes and closes the underlying producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
