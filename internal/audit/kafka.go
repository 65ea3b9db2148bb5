package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaEmitter streams audit events to a Kafka topic. Events are keyed by
// person ID so renames for one person stay ordered within a partition.
type KafkaEmitter struct {
	client *kgo.Client
	topic  string
}

// NewKafkaEmitter connects to the given brokers and produces to topic.
func NewKafkaEmitter(brokers []string, topic string) (*KafkaEmitter, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerLinger(0),
	)
	if err != nil {
		return nil, fmt.Errorf("creating kafka client: %w", err)
	}
	return &KafkaEmitter{client: client, topic: topic}, nil
}

func (e *KafkaEmitter) Emit(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: e.topic,
		Key:   []byte(event.PersonID.String()),
		Value: payload,
	}
	if err := e.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("producing audit event: %w", err)
	}
	return nil
}

func (e *KafkaEmitter) Close() {
	e.client.Close()
}
