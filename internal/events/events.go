package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/maisdocacau/storefront/internal/models"
)

// OrderEvent 订单领域事件
type OrderEvent struct {
	Type       string       `json:"type"`
	OrderNo    string       `json:"order_no"`
	Status     string       `json:"status"`
	UserID     *uint        `json:"user_id,omitempty"`
	Total      models.Money `json:"total"`
	Zone       string       `json:"zone,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// NewOrderEvent 由订单快照构建事件
func NewOrderEvent(eventType string, order *models.Order, at time.Time) OrderEvent {
	event := OrderEvent{Type: eventType, OccurredAt: at.UTC()}
	if order == nil {
		return event
	}
	event.OrderNo = order.OrderNo
	event.Status = order.Status
	event.UserID = order.UserID
	event.Total = order.Total
	event.Zone = order.Zone
	return event
}

// Encode 序列化为消息体
func (e OrderEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher 订单事件发布接口
type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close() error
}

// NoopPublisher 未启用 Kafka 时使用
type NoopPublisher struct{}

// Publish 丢弃事件
func (NoopPublisher) Publish(context.Context, OrderEvent) error { return nil }

// Close 无操作
func (NoopPublisher) Close() error { return nil }

// MemoryPublisher 记录已发布事件，用于测试
type MemoryPublisher struct {
	mu     sync.Mutex
	events []OrderEvent
	Err    error
}

// Publish 记录事件
func (p *MemoryPublisher) Publish(_ context.Context, event OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, event)
	return nil
}

// Close 无操作
func (p *MemoryPublisher) Close() error { return nil }

// Events 已发布事件副本
func (p *MemoryPublisher) Events() []OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]OrderEvent, len(p.events))
	copy(out, p.events)
	return out
}
