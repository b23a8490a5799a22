package repository

import (
	"context"
	"time"

	"CourtPulse/internal/domain/repository"
	"CourtPulse/pkg/kafka"
)

const refreshTopic = "courtpulse.refresh.v1"

// LogTopic carries aggregated error logs when Kafka is enabled.
const LogTopic = "courtpulse.logs.v1"

// RefreshEvent is the message emitted after a live section refresh.
type RefreshEvent struct {
	Domain string    `json:"domain"`
	AsOf   time.Time `json:"asOf"`
	Count  int       `json:"count"`
}

// KafkaEventPublisher emits refresh events through the shared producer.
// Delivery is best effort; callers never fail a refresh on publish errors.
type KafkaEventPublisher struct {
	producer *kafka.Producer
}

func NewKafkaEventPublisher(producer *kafka.Producer) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer}
}

var _ repository.EventPublisher = (*KafkaEventPublisher)(nil)

func (p *KafkaEventPublisher) PublishRefresh(ctx context.Context, domain string, asOf time.Time, count int) error {
	return p.producer.Publish(ctx, refreshTopic, []byte(domain), RefreshEvent{
		Domain: domain,
		AsOf:   asOf,
		Count:  count,
	})
}

// PublishMessage satisfies the log collector's publisher contract so
// aggregated logs can ride the same producer.
func (p *KafkaEventPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

// NopEventPublisher is used when Kafka is disabled.
type NopEventPublisher struct{}

var _ repository.EventPublisher = NopEventPublisher{}

func (NopEventPublisher) PublishRefresh(context.Context, string, time.Time, int) error {
	return nil
}
