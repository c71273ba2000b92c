package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kfake"
	"github.com/twmb/franz-go/pkg/kgo"
)

func TestKafkaOrderPublisher_PublishOrder(t *testing.T) {
	t.Setenv("KAFKA_USERNAME", "")
	t.Setenv("KAFKA_PASSWORD", "")

	cluster, err := kfake.NewCluster(kfake.NumBrokers(1), kfake.SeedTopics(1, "orders"))
	require.NoError(t, err)
	t.Cleanup(cluster.Close)

	pub, err := NewKafkaOrderPublisher(cluster.ListenAddrs(), "orders")
	require.NoError(t, err)
	t.Cleanup(pub.Close)

	order := sampleState().Orders[0]
	require.NoError(t, pub.PublishOrder(context.Background(), "luxe-store:abc", order))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(cluster.ListenAddrs()...),
		kgo.ConsumeTopics("orders"),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	t.Cleanup(consumer.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var records []*kgo.Record
	for len(records) == 0 {
		fetches := consumer.PollFetches(ctx)
		require.NoError(t, ctx.Err())
		records = append(records, fetches.Records()...)
	}
	require.Len(t, records, 1)
	rec := records[0]

	assert.Equal(t, order.Id, string(rec.Key))
	headers := map[string]string{}
	for _, h := range rec.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, map[string]string{"event_type": "order_created", "version": "1.0"}, headers)

	var event OrderEvent
	require.NoError(t, json.Unmarshal(rec.Value, &event))
	assert.Equal(t, "luxe-store:abc", event.SessionId)
	assert.Equal(t, order.Id, event.Order.Id)
	assert.Equal(t, order.Total, event.Order.Total)
	assert.Equal(t, order.Items, event.Order.Items)
	assert.True(t, order.OrderDate.Equal(event.Order.OrderDate))
}

func TestNopOrderPublisher(t *testing.T) {
	var pub OrderPublisher = NopOrderPublisher{}
	assert.NoError(t, pub.PublishOrder(context.Background(), "", sampleState().Orders[0]))
	pub.Close()
}
