package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"luxeStore/models"

	"github.com/sirupsen/logrus"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/plain"
)

// OrderPublisher announces placed orders to the outside world. Publishing
// is fire-and-forget: a failed delivery is logged and never undoes the order.
type OrderPublisher interface {
	PublishOrder(ctx context.Context, sessionId string, order models.Order) error
	Close()
}

type NopOrderPublisher struct{}

func (NopOrderPublisher) PublishOrder(context.Context, string, models.Order) error { return nil }
func (NopOrderPublisher) Close()                                                   {}

type OrderEvent struct {
	SessionId string       `json:"session_id"`
	Order     models.Order `json:"order"`
}

type KafkaOrderPublisher struct {
	client *kgo.Client
	topic  string
}

func NewKafkaOrderPublisher(brokers []string, topic string) (OrderPublisher, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(10 * time.Millisecond),
	}

	if os.Getenv("KAFKA_USERNAME") != "" && os.Getenv("KAFKA_PASSWORD") != "" {
		opts = append(opts, kgo.SASL(plain.Auth{
			User: os.Getenv("KAFKA_USERNAME"),
			Pass: os.Getenv("KAFKA_PASSWORD"),
		}.AsMechanism()))
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}
	return &KafkaOrderPublisher{
		client: client,
		topic:  topic,
	}, nil
}

func (k *KafkaOrderPublisher) PublishOrder(ctx context.Context, sessionId string, order models.Order) error {
	data, err := json.Marshal(OrderEvent{SessionId: sessionId, Order: order})
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}
	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(order.Id),
		Value: data,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte("order_created")},
			{Key: "version", Value: []byte("1.0")},
		},
		Timestamp: order.OrderDate,
	}
	k.client.Produce(ctx, record, func(record *kgo.Record, err error) {
		if err != nil {
			logrus.WithField("order", order.Id).Errorf("PublishOrder: %v", err)
			return
		}
		logrus.WithField("order", order.Id).Debugf("PublishOrder: partition %d offset %d", record.Partition, record.Offset)
	})
	return nil
}

func (k *KafkaOrderPublisher) Close() {
	k.client.Close()
}
