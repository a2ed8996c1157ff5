package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/maisdocacau/storefront/internal/config"
	"github.com/maisdocacau/storefront/internal/logger"

	"github.com/segmentio/kafka-go"
)

// ErrPublisherClosed 发布器已关闭
var ErrPublisherClosed = errors.New("event publisher closed")

// messageWriter kafka.Writer 的最小子集，便于替换
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher 基于 kafka-go Writer 的同步发布器，消息按订单号分区
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	closed atomic.Bool
}

// NewKafkaPublisher 创建 Kafka 发布器
func NewKafkaPublisher(cfg config.KafkaConfig) (*KafkaPublisher, error) {
	brokers := make([]string, 0, len(cfg.Brokers))
	for _, broker := range cfg.Brokers {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	topic := strings.TrimSpace(cfg.Topic)
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	batchTimeout := time.Duration(cfg.BatchTimeoutMS) * time.Millisecond
	if batchTimeout <= 0 {
		batchTimeout = time.Second
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: batchTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		MaxAttempts:  maxAttempts,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Warnw("kafka_writer_error", "detail", fmt.Sprintf(msg, args...))
		}),
	}
	return newKafkaPublisher(writer, topic), nil
}

func newKafkaPublisher(writer messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topic: topic}
}

// Publish 同步写入，阻塞到 broker 确认
func (p *KafkaPublisher) Publish(ctx context.Context, event OrderEvent) error {
	if p.closed.Load() {
		return ErrPublisherClosed
	}
	payload, err := event.Encode()
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(event.OrderNo),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s to %s: %w", event.Type, p.topic, err)
	}
	logger.Debugw("order_event_published", "type", event.Type, "order_no", event.OrderNo, "topic", p.topic)
	return nil
}

// Close 关闭 writer，可重复调用
func (p *KafkaPublisher) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

// NewPublisher 按配置选择 Kafka 或空发布器
func NewPublisher(cfg config.KafkaConfig) (Publisher, error) {
	if !cfg.Enabled {
		return NoopPublisher{}, nil
	}
	return NewKafkaPublisher(cfg)
}
