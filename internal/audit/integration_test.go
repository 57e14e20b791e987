//go:build integration

package audit

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"gatehouse/internal/platform/config"
	"gatehouse/internal/platform/kafka/producer"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/testutil/containers"
)

// TestKafkaStorePublishes verifies the Kafka audit sink end to end: events
// land on the topic keyed by visitor id, carry the action header, and
// round-trip through JSON.
func TestKafkaStorePublishes(t *testing.T) {
	kc := containers.GetManager().GetKafka(t)
	ctx := context.Background()

	const topic = "gatehouse.audit.test"
	require.NoError(t, kc.CreateTopic(ctx, topic, 1, 1))

	p, err := producer.New(config.KafkaConfig{
		Brokers:         kc.Brokers,
		Acks:            "all",
		Retries:         3,
		DeliveryTimeout: 10 * time.Second,
		AuditTopic:      topic,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer p.Close()

	store := NewKafkaStore(p, topic)
	visitorID := id.NewVisitorID().String()
	event := Event{
		Timestamp: time.Now().UTC(),
		VisitorID: visitorID,
		Action:    ActionCheckIn,
		Detail:    "time in 2:30 PM",
		RequestID: "req-123",
	}
	require.NoError(t, store.Append(ctx, event))

	consumer, err := kc.NewConsumer("audit-test-group", topic)
	require.NoError(t, err)
	defer consumer.Close()

	record := kc.WaitForMessage(ctx, consumer, 30*time.Second, func(r *kgo.Record) bool {
		return string(r.Key) == visitorID
	})
	require.NotNil(t, record, "expected audit event on topic")

	var got Event
	require.NoError(t, json.Unmarshal(record.Value, &got))
	require.Equal(t, event.VisitorID, got.VisitorID)
	require.Equal(t, ActionCheckIn, got.Action)
	require.Equal(t, event.Detail, got.Detail)
	require.Equal(t, event.RequestID, got.RequestID)

	var action string
	for _, h := range record.Headers {
		if h.Key == "action" {
			action = string(h.Value)
		}
	}
	require.Equal(t, string(ActionCheckIn), action)
}

// TestKafkaStoreRejectsReads documents that the Kafka sink is write-only;
// deployments needing reads compose it with the memory store via Tee.
func TestKafkaStoreRejectsReads(t *testing.T) {
	store := &KafkaStore{}
	_, err := store.ListByVisitor(context.Background(), "any")
	require.Error(t, err)
}
