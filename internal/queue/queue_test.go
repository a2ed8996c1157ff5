package queue

import (
	"testing"

	"github.com/maisdocacau/storefront/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	require.NoError(t, err)
	assert.False(t, client.Enabled())
	assert.NoError(t, client.EnqueueOrderConfirmed("MDC00000001"))
	assert.NoError(t, client.EnqueueOrderPaymentExpire("MDC00000001", 0))
	assert.NoError(t, client.Close())
}

func TestOrderConfirmedTaskRoundTrip(t *testing.T) {
	task, err := NewOrderConfirmedTask(OrderConfirmedPayload{OrderNo: " MDC12345678 "})
	require.NoError(t, err)
	assert.Equal(t, TaskOrderConfirmed, task.Type())

	orderNo, err := ParseOrderNoPayload(task.Payload())
	require.NoError(t, err)
	assert.Equal(t, "MDC12345678", orderNo)
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	assert.Equal(t, "127.0.0.1:6379", opt.Addr)
	assert.Equal(t, 10, cfg.Concurrency)
	assert.Equal(t, map[string]int{DefaultQueue: 1}, cfg.Queues)

	opt, cfg = BuildServerConfig(&config.QueueConfig{Host: "redis", Port: 6380, Concurrency: 3, Queues: map[string]int{"critical": 2}})
	assert.Equal(t, "redis:6380", opt.Addr)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, map[string]int{"critical": 2}, cfg.Queues)
}
