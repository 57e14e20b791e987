package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"gatehouse/internal/platform/kafka/producer"
)

// KafkaStore publishes audit events to a Kafka topic, keyed by visitor id so
// one visitor's trail stays ordered within a partition.
//
// ListByVisitor is not served from Kafka; consumers own their own
// materialized views. Deployments that need in-process listing compose this
// sink with the in-memory store via Tee.
type KafkaStore struct {
	producer *producer.Producer
	topic    string
}

func NewKafkaStore(p *producer.Producer, topic string) *KafkaStore {
	return &KafkaStore{producer: p, topic: topic}
}

func (s *KafkaStore) Append(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	return s.producer.Produce(ctx, &producer.Message{
		Topic: s.topic,
		Key:   []byte(event.VisitorID),
		Value: value,
		Headers: map[string]string{
			"action": string(event.Action),
		},
	})
}

func (s *KafkaStore) ListByVisitor(_ context.Context, _ string) ([]Event, error) {
	return nil, fmt.Errorf("kafka audit sink does not serve reads")
}

var _ Store = (*KafkaStore)(nil)

// Tee appends every event to both sinks. The first error wins but both
// appends are attempted.
type Tee struct {
	Primary   Store
	Secondary Store
}

func (t *Tee) Append(ctx context.Context, event Event) error {
	err1 := t.Primary.Append(ctx, event)
	err2 := t.Secondary.Append(ctx, event)
	if err1 != nil {
		return err1
	}
	return err2
}

func (t *Tee) ListByVisitor(ctx context.Context, visitorID string) ([]Event, error) {
	return t.Secondary.ListByVisitor(ctx, visitorID)
}

var _ Store = (*Tee)(nil)
