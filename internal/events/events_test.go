package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/maisdocacau/storefront/internal/config"
	"github.com/maisdocacau/storefront/internal/constants"
	"github.com/maisdocacau/storefront/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closes int
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closes++
	return nil
}

func sampleOrder() *models.Order {
	userID := uint(5)
	return &models.Order{
		OrderNo: "MDC12345678",
		Status:  constants.OrderStatusConfirmed,
		UserID:  &userID,
		Total:   models.MustMoney("136.70"),
		Zone:    "Zona Sul",
	}
}

func TestNewOrderEvent(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("BRT", -3*3600))
	event := NewOrderEvent(constants.OrderEventConfirmed, sampleOrder(), at)

	assert.Equal(t, "MDC12345678", event.OrderNo)
	assert.Equal(t, constants.OrderStatusConfirmed, event.Status)
	assert.Equal(t, time.UTC, event.OccurredAt.Location())

	payload, err := event.Encode()
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "order.confirmed", decoded["type"])
	assert.Equal(t, "136.70", decoded["total"])

	empty := NewOrderEvent("x", nil, at)
	assert.Empty(t, empty.OrderNo)
}

func TestKafkaPublisherWritesKeyedMessage(t *testing.T) {
	writer := &recordingWriter{}
	publisher := newKafkaPublisher(writer, "orders")

	event := NewOrderEvent(constants.OrderEventConfirmed, sampleOrder(), time.Now())
	require.NoError(t, publisher.Publish(context.Background(), event))

	require.Len(t, writer.msgs, 1)
	msg := writer.msgs[0]
	assert.Equal(t, "MDC12345678", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "order.confirmed", string(msg.Headers[0].Value))

	require.NoError(t, publisher.Close())
	require.NoError(t, publisher.Close())
	assert.Equal(t, 1, writer.closes)
	assert.ErrorIs(t, publisher.Publish(context.Background(), event), ErrPublisherClosed)
}

func TestKafkaPublisherWrapsWriteError(t *testing.T) {
	boom := errors.New("broker down")
	publisher := newKafkaPublisher(&recordingWriter{err: boom}, "orders")
	err := publisher.Publish(context.Background(), NewOrderEvent("order.confirmed", sampleOrder(), time.Now()))
	assert.ErrorIs(t, err, boom)
}

func TestNewPublisherSelectsImplementation(t *testing.T) {
	publisher, err := NewPublisher(config.KafkaConfig{})
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, publisher)

	_, err = NewPublisher(config.KafkaConfig{Enabled: true, Topic: "orders"})
	assert.Error(t, err)
	_, err = NewPublisher(config.KafkaConfig{Enabled: true, Brokers: []string{"localhost:9092"}})
	assert.Error(t, err)

	publisher, err = NewPublisher(config.KafkaConfig{Enabled: true, Brokers: []string{" localhost:9092 "}, Topic: "orders"})
	require.NoError(t, err)
	assert.IsType(t, &KafkaPublisher{}, publisher)
	assert.NoError(t, publisher.Close())
}

func TestMemoryPublisher(t *testing.T) {
	publisher := &MemoryPublisher{}
	require.NoError(t, publisher.Publish(context.Background(), OrderEvent{OrderNo: "A"}))
	assert.Len(t, publisher.Events(), 1)

	publisher.Err = errors.New("down")
	assert.Error(t, publisher.Publish(context.Background(), OrderEvent{OrderNo: "B"}))
	assert.Len(t, publisher.Events(), 1)
}
